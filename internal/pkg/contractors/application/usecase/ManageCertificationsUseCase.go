package usecase

import (
	"context"
	"errors"
	"fmt"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

// ManageCertificationsUseCase covers credential CRUD for the calling contractor.
type ManageCertificationsUseCase struct {
	Repo repository.ContractorRepository
}

func NewManageCertificationsUseCase(repo repository.ContractorRepository) *ManageCertificationsUseCase {
	return &ManageCertificationsUseCase{Repo: repo}
}

func (uc *ManageCertificationsUseCase) profileID(ctx context.Context, userID string) (string, error) {
	p, err := uc.Repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, contractors.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p.ID, nil
}

func (uc *ManageCertificationsUseCase) List(ctx context.Context, userID string) ([]contractors.Certification, error) {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}
	certs, err := uc.Repo.ListCertifications(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if certs == nil {
		certs = []contractors.Certification{}
	}
	return certs, nil
}

func (uc *ManageCertificationsUseCase) Create(ctx context.Context, userID string, cert contractors.Certification) (*contractors.Certification, error) {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cert.ContractorID = id

	validated, err := contractors.NewCertification(cert)
	if err != nil {
		return nil, err
	}
	certID, err := uc.Repo.CreateCertification(ctx, *validated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	validated.ID = certID
	return validated, nil
}

func (uc *ManageCertificationsUseCase) Delete(ctx context.Context, userID, certID string) error {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return err
	}
	err = uc.Repo.DeleteCertification(ctx, id, certID)
	if err != nil && !errors.Is(err, contractors.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return err
}
