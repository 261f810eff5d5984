package usecase

import (
	"context"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	draftRepo   domain.DraftRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, draftRepo domain.DraftRepository) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		draftRepo:   draftRepo,
	}
}

func (u *profileUsecase) GetDraft(ctx context.Context, profileID int64) (*domain.ProfileDraft, error) {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}

	sections, err := u.draftRepo.GetSections(ctx, profileID)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	return &domain.ProfileDraft{
		Profile:  *profile,
		Sections: *sections,
	}, nil
}

// Submit flips draft -> submitted. The transition is one-way and idempotent:
// re-submitting an already-submitted profile reports the current status
// without error and without touching the row.
func (u *profileUsecase) Submit(ctx context.Context, profileID int64) (*domain.SubmitResult, error) {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}

	if profile.Status == domain.ProfileStatusSubmitted {
		return &domain.SubmitResult{Status: domain.ProfileStatusSubmitted}, nil
	}

	if err := u.profileRepo.UpdateStatus(ctx, profileID, domain.ProfileStatusSubmitted); err != nil {
		return nil, apperror.PersistenceFailure(err)
	}

	return &domain.SubmitResult{Status: domain.ProfileStatusSubmitted}, nil
}
