package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/mailer"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/port"
)

const digestItemLimit = 10

// SendDigestUseCase emails one user a summary of their unread notifications.
type SendDigestUseCase struct {
	Repo     repository.NotificationRepository
	Mail     EmailSender
	SiteName string
	SiteURL  string
}

func NewSendDigestUseCase(repo repository.NotificationRepository, mail EmailSender, siteName, siteURL string) *SendDigestUseCase {
	return &SendDigestUseCase{Repo: repo, Mail: mail, SiteName: siteName, SiteURL: siteURL}
}

// Candidates lists users who currently have unread notifications.
func (uc *SendDigestUseCase) Candidates(ctx context.Context) ([]string, error) {
	ids, err := uc.Repo.ListUsersWithUnread(ctx, 500)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ids, nil
}

func (uc *SendDigestUseCase) Execute(ctx context.Context, userID string) error {
	prefs, err := uc.Repo.GetPreferences(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	// The digest is a marketing-adjacent summary; it honors the marketing flag.
	if !prefs.EmailMarketing {
		return nil
	}

	unread, err := uc.Repo.ListUnread(ctx, userID, digestItemLimit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(unread) == 0 {
		return nil
	}
	total, err := uc.Repo.UnreadCount(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	rec, err := uc.Repo.GetRecipient(ctx, userID)
	if errors.Is(err, notifications.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	items := make([]mailer.DigestItem, 0, len(unread))
	for _, n := range unread {
		items = append(items, mailer.DigestItem{Title: n.Title, Message: n.Message})
	}
	plain, html, err := mailer.RenderDigest(mailer.DigestEmail{
		RecipientName: rec.Name,
		Items:         items,
		TotalUnread:   total,
		SiteName:      uc.SiteName,
		SiteURL:       uc.SiteURL,
	})
	if err != nil {
		return err
	}
	return uc.Mail.Send(rec.Email, "Your daily digest", plain, html)
}
