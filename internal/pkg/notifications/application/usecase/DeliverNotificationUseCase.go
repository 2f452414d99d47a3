package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/mailer"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/port"
)

// EmailSender is the outbound mail contract. *mailer.Mailer satisfies it.
type EmailSender interface {
	Send(to, subject, plainBody, htmlBody string) error
}

// DeliverNotificationUseCase fans one notification out to the channels the
// recipient's preferences allow: the in-app inbox and email.
type DeliverNotificationUseCase struct {
	Repo     repository.NotificationRepository
	Mail     EmailSender
	SiteName string
	SiteURL  string
}

func NewDeliverNotificationUseCase(repo repository.NotificationRepository, mail EmailSender, siteName, siteURL string) *DeliverNotificationUseCase {
	return &DeliverNotificationUseCase{Repo: repo, Mail: mail, SiteName: siteName, SiteURL: siteURL}
}

func (uc *DeliverNotificationUseCase) Execute(ctx context.Context, in notifications.Notification) error {
	n, err := notifications.NewNotification(in)
	if err != nil {
		return err
	}

	prefs, err := uc.Repo.GetPreferences(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if prefs.AllowsInApp(n.Kind) {
		if _, err := uc.Repo.Create(ctx, *n); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if uc.Mail == nil || !prefs.AllowsEmail(n.Kind) {
		return nil
	}

	rec, err := uc.Repo.GetRecipient(ctx, n.UserID)
	if errors.Is(err, notifications.ErrNotFound) {
		// Suspended or deleted since the task was enqueued.
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	plain, html, err := mailer.RenderNotification(mailer.NotificationEmail{
		RecipientName: rec.Name,
		Title:         n.Title,
		Message:       n.Message,
		SiteName:      uc.SiteName,
		SiteURL:       uc.SiteURL,
	})
	if err != nil {
		return err
	}
	if err := uc.Mail.Send(rec.Email, n.Title, plain, html); err != nil {
		// Email failure must not fail the in-app delivery that already happened;
		// leave it to the next digest instead of retrying the whole task.
		logger.Errorf("notification email to %s: %v", rec.Email, err)
	}
	return nil
}
