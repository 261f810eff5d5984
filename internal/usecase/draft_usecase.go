package usecase

import (
	"context"
	"errors"
	"time"

	"go-resume-backend/internal/derive"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type draftUsecase struct {
	profileRepo domain.ProfileRepository
	draftRepo   domain.DraftRepository
	validate    *validator.Validate
	now         func() time.Time
}

// NewDraftUsecase wires the synchronization engine. The clock is injectable
// because age and tenure are computed against "today".
func NewDraftUsecase(profileRepo domain.ProfileRepository, draftRepo domain.DraftRepository, validate *validator.Validate, now func() time.Time) domain.DraftUsecase {
	if now == nil {
		now = time.Now
	}
	return &draftUsecase{
		profileRepo: profileRepo,
		draftRepo:   draftRepo,
		validate:    validate,
		now:         now,
	}
}

// SyncDraft accepts a full snapshot of the sections present in the request,
// replaces those sections atomically and recomputes the profile's derived
// attributes. Sections absent from the request are untouched; an empty list
// clears its section. The whole operation lands in one transaction: any
// failure leaves the profile and every child collection as they were.
func (u *draftUsecase) SyncDraft(ctx context.Context, profileID int64, req *domain.SyncDraftRequest) (*domain.SyncResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.InvalidInput("Validation failed: " + err.Error())
	}

	// Preconditions run before any transaction is opened
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperror.PersistenceFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Profile not found")
	}

	// Cross-record invariant, checked over exactly the incoming list: at most
	// one work experience may be open-ended ("currently employed")
	if req.WorkExperiences != nil {
		open := 0
		for _, w := range req.WorkExperiences {
			if w.EndDate == nil {
				open++
			}
		}
		if open > 1 {
			return nil, apperror.InvalidState("At most one work experience may have no end date")
		}
	}

	sync := u.buildSync(profileID, profile, req)

	if err := u.draftRepo.ApplySync(ctx, sync); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.PersistenceFailure(err)
	}

	return &domain.SyncResult{Status: "ok", ProfileID: profileID}, nil
}

// buildSync filters each present section through its completeness rule,
// resolves the basic-info patch and computes the derived attributes. Items
// missing required fields are dropped silently - that is deliberate policy,
// not an error.
func (u *draftUsecase) buildSync(profileID int64, profile *domain.Profile, req *domain.SyncDraftRequest) *domain.SectionSync {
	sync := &domain.SectionSync{ProfileID: profileID}

	if req.BasicInfo != nil {
		sync.Basic = buildBasicPatch(req.BasicInfo, u.now())
	}

	if req.JobPreferences != nil {
		sync.JobPreferences = filterJobPreferences(req.JobPreferences)
	}
	if req.Educations != nil {
		sync.Educations = filterEducations(req.Educations)
	}
	if req.WorkExperiences != nil {
		sync.WorkExperiences = filterWorkExperiences(req.WorkExperiences)
	}
	if req.ProjectExperiences != nil {
		sync.ProjectExperiences = filterProjectExperiences(req.ProjectExperiences)
	}
	if req.Skills != nil {
		sync.Skills = filterSkills(req.Skills)
	}
	if req.Certificates != nil {
		sync.Certificates = filterCertificates(req.Certificates)
	}
	if req.Trainings != nil {
		sync.Trainings = filterTrainings(req.Trainings)
	}
	if req.Languages != nil {
		sync.Languages = filterLanguages(req.Languages)
	}

	if req.Educations != nil || req.WorkExperiences != nil {
		status := profile.EmploymentStatus
		if sync.Basic != nil && sync.Basic.EmploymentStatus != nil {
			status = *sync.Basic.EmploymentStatus
		}
		sync.Derived = derive.Resolve(derive.ResolveInput{
			Educations:        sync.Educations,
			EducationsPresent: req.Educations != nil,
			WorkExperiences:   sync.WorkExperiences,
			WorksPresent:      req.WorkExperiences != nil,
			EmploymentStatus:  status,
			Today:             u.now(),
		})
	}

	return sync
}

// buildBasicPatch resolves the basic-info subset: birth date falls back to
// the one embedded in the identity number, and age is recomputed whenever a
// birth date is known.
func buildBasicPatch(in *domain.BasicInfoInput, today time.Time) *domain.BasicPatch {
	p := &domain.BasicPatch{
		Gender:        in.Gender,
		IDNumber:      in.IDNumber,
		MaritalStatus: in.MaritalStatus,
		HouseholdCity: in.HouseholdCity,
		CurrentCity:   in.CurrentCity,
		Address:       in.Address,
		IDFrontURL:    in.IDFrontURL,
		IDBackURL:     in.IDBackURL,
		AvatarURL:     in.AvatarURL,
		Highlights:    in.Highlights,
	}

	var birth *time.Time
	if in.BirthDate != nil {
		birth = derive.ParseDate(*in.BirthDate)
	}
	if birth == nil && in.IDNumber != nil {
		birth = derive.BirthDateFromIDNumber(*in.IDNumber)
	}
	if birth != nil {
		p.BirthDate = birth
		p.Age = derive.CalculateAge(*birth, today)
	}

	if in.EmploymentStatus != nil {
		status := domain.EmploymentStatus(*in.EmploymentStatus)
		p.EmploymentStatus = &status
	}

	return p
}

// ============================================================================
// Per-section completeness checks
// ============================================================================

func filterJobPreferences(items []domain.JobPreference) []domain.JobPreference {
	out := make([]domain.JobPreference, 0, len(items))
	for _, jp := range items {
		if jp.Position == "" {
			continue
		}
		out = append(out, jp)
	}
	return out
}

func filterEducations(items []domain.Education) []domain.Education {
	out := make([]domain.Education, 0, len(items))
	for _, e := range items {
		if e.School == "" || derive.ParseDate(e.StartDate) == nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

func filterWorkExperiences(items []domain.WorkExperience) []domain.WorkExperience {
	out := make([]domain.WorkExperience, 0, len(items))
	for _, w := range items {
		if derive.ParseDate(w.StartDate) == nil {
			continue
		}
		out = append(out, w)
	}
	return out
}

func filterProjectExperiences(items []domain.ProjectExperience) []domain.ProjectExperience {
	out := make([]domain.ProjectExperience, 0, len(items))
	for _, p := range items {
		if p.Name == "" || derive.ParseDate(p.StartDate) == nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func filterSkills(items []domain.Skill) []domain.Skill {
	out := make([]domain.Skill, 0, len(items))
	for _, s := range items {
		if s.Name == "" {
			continue
		}
		// provenance is server-assigned, never trusted from the payload
		if s.CatalogID != nil {
			s.Source = domain.SkillSourceCatalog
		} else {
			s.Source = domain.SkillSourceCustom
		}
		out = append(out, s)
	}
	return out
}

func filterCertificates(items []domain.Certificate) []domain.Certificate {
	out := make([]domain.Certificate, 0, len(items))
	for _, c := range items {
		if c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func filterTrainings(items []domain.Training) []domain.Training {
	out := make([]domain.Training, 0, len(items))
	for _, t := range items {
		if t.Name == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func filterLanguages(items []domain.Language) []domain.Language {
	out := make([]domain.Language, 0, len(items))
	for _, l := range items {
		if l.Name == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
