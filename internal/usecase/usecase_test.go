package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateStatus(ctx context.Context, id int64, status domain.ProfileStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) ApplySync(ctx context.Context, sync *domain.SectionSync) error {
	return m.Called(ctx, sync).Error(0)
}

func (m *MockDraftRepo) GetSections(ctx context.Context, profileID int64) (*domain.DraftSections, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftSections), args.Error(1)
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func draftProfile() *domain.Profile {
	return &domain.Profile{
		ID:               1001,
		Status:           domain.ProfileStatusDraft,
		EmploymentStatus: domain.EmploymentUnemployed,
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	return appErr.Kind
}

func TestSyncDraftPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject when profile does not exist", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(nil, nil)

		uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
		_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
		draftRepo.AssertNotCalled(t, "ApplySync", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed payload before touching storage", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)

		uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
		_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
			Educations: []domain.Education{
				{School: "Tech University", StartDate: "not-a-date"},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindInvalidInput, kindOf(t, err))
		profileRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should reject two open-ended work records without opening a transaction", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

		uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
		_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "2020-01-01"},
				{Company: "Globex", StartDate: "2021-01-01"},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, kindOf(t, err))
		draftRepo.AssertNotCalled(t, "ApplySync", mock.Anything, mock.Anything)
	})

	t.Run("Invariant is checked over the raw list, before completeness filtering", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

		// both records are open-ended; one would be dropped by the filter for
		// its missing start date, but the conflict must still be reported
		uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
		_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "2020-01-01"},
				{Company: "Globex"},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, apperror.KindInvalidState, kindOf(t, err))
	})
}

func TestSyncDraftSectionIsolation(t *testing.T) {
	ctx := context.Background()
	profileRepo := new(MockProfileRepo)
	draftRepo := new(MockDraftRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

	var captured *domain.SectionSync
	draftRepo.On("ApplySync", mock.Anything, mock.AnythingOfType("*domain.SectionSync")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.SectionSync) }).
		Return(nil)

	uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
	result, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
		Skills: []domain.Skill{{Name: "Go"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result.Status)
	assert.NotNil(t, captured)

	// only the section present in the request is handed to the repository
	assert.NotNil(t, captured.Skills)
	assert.Nil(t, captured.JobPreferences)
	assert.Nil(t, captured.Educations)
	assert.Nil(t, captured.WorkExperiences)
	assert.Nil(t, captured.ProjectExperiences)
	assert.Nil(t, captured.Certificates)
	assert.Nil(t, captured.Trainings)
	assert.Nil(t, captured.Languages)
	assert.Nil(t, captured.Basic)
	assert.Nil(t, captured.Derived)
}

func TestSyncDraftCompletenessFilters(t *testing.T) {
	ctx := context.Background()

	runSync := func(t *testing.T, req *domain.SyncDraftRequest) *domain.SectionSync {
		t.Helper()
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

		var captured *domain.SectionSync
		draftRepo.On("ApplySync", mock.Anything, mock.AnythingOfType("*domain.SectionSync")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.SectionSync) }).
			Return(nil)

		uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
		_, err := uc.SyncDraft(ctx, 1001, req)
		assert.NoError(t, err)
		return captured
	}

	t.Run("Education without school or start date is dropped", func(t *testing.T) {
		sync := runSync(t, &domain.SyncDraftRequest{
			Educations: []domain.Education{
				{School: "Tech University", LevelCode: "master", StartDate: "2015-09-01"},
				{School: "", LevelCode: "doctorate", StartDate: "2019-09-01"},
				{School: "City College", LevelCode: "bachelor"},
			},
		})

		assert.Len(t, sync.Educations, 1)
		assert.Equal(t, "Tech University", sync.Educations[0].School)
		// the dropped doctorate never reaches derivation
		assert.Equal(t, "master", *sync.Derived.EducationLevel)
	})

	t.Run("Job preference without position is dropped", func(t *testing.T) {
		sync := runSync(t, &domain.SyncDraftRequest{
			JobPreferences: []domain.JobPreference{
				{Position: "Backend Engineer", City: "Jakarta"},
				{City: "Bandung"},
			},
		})

		assert.Len(t, sync.JobPreferences, 1)
	})

	t.Run("Skill provenance is server assigned", func(t *testing.T) {
		sync := runSync(t, &domain.SyncDraftRequest{
			Skills: []domain.Skill{
				{Name: "Go", CatalogID: int64Ptr(42), Source: domain.SkillSourceCustom},
				{Name: "Team leading", Source: domain.SkillSourceCatalog},
				{Name: ""},
			},
		})

		assert.Len(t, sync.Skills, 2)
		assert.Equal(t, domain.SkillSourceCatalog, sync.Skills[0].Source)
		assert.Equal(t, domain.SkillSourceCustom, sync.Skills[1].Source)
	})

	t.Run("Empty education list clears the derived triple", func(t *testing.T) {
		sync := runSync(t, &domain.SyncDraftRequest{
			Educations: []domain.Education{},
		})

		assert.NotNil(t, sync.Educations)
		assert.Len(t, sync.Educations, 0)
		assert.NotNil(t, sync.Derived)
		assert.True(t, sync.Derived.SetEducation)
		assert.Nil(t, sync.Derived.EducationLevel)
	})
}

func TestSyncDraftEmployerInference(t *testing.T) {
	ctx := context.Background()
	profileRepo := new(MockProfileRepo)
	draftRepo := new(MockDraftRepo)

	// stored profile says unemployed; the same request flips the status
	profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

	var captured *domain.SectionSync
	draftRepo.On("ApplySync", mock.Anything, mock.AnythingOfType("*domain.SectionSync")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.SectionSync) }).
		Return(nil)

	uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
	_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
		BasicInfo: &domain.BasicInfoInput{EmploymentStatus: strPtr("employed")},
		WorkExperiences: []domain.WorkExperience{
			{Company: "Globex", Position: "Analyst", StartDate: "2018-01-01", EndDate: strPtr("2020-01-01")},
			{Company: "Acme", Position: "Engineer", StartDate: "2020-02-01"},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, captured.Derived)
	assert.Equal(t, "Acme", *captured.Derived.CurrentCompany)
	assert.Equal(t, "Engineer", *captured.Derived.CurrentPosition)
}

func TestSyncDraftBasicPatch(t *testing.T) {
	ctx := context.Background()
	profileRepo := new(MockProfileRepo)
	draftRepo := new(MockDraftRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)

	var captured *domain.SectionSync
	draftRepo.On("ApplySync", mock.Anything, mock.AnythingOfType("*domain.SectionSync")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*domain.SectionSync) }).
		Return(nil)

	uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
	_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
		BasicInfo: &domain.BasicInfoInput{
			IDNumber: strPtr("110101199003157890"),
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, captured.Basic)
	// birth date falls back to the identity number, age follows from it
	assert.Equal(t, time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), *captured.Basic.BirthDate)
	assert.Equal(t, 36, *captured.Basic.Age)
	// no section was synced, so nothing is derived
	assert.Nil(t, captured.Derived)
}

func TestSyncDraftStorageErrors(t *testing.T) {
	ctx := context.Background()
	profileRepo := new(MockProfileRepo)
	draftRepo := new(MockDraftRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)
	draftRepo.On("ApplySync", mock.Anything, mock.Anything).
		Return(apperror.PersistenceTimeout("Storage operation timed out", errors.New("canceling statement due to lock timeout")))

	uc := usecase.NewDraftUsecase(profileRepo, draftRepo, newValidator(), fixedNow)
	_, err := uc.SyncDraft(ctx, 1001, &domain.SyncDraftRequest{
		Skills: []domain.Skill{{Name: "Go"}},
	})

	assert.Error(t, err)
	assert.Equal(t, apperror.KindPersistenceTimeout, kindOf(t, err))
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Draft profile transitions to submitted", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)
		profileRepo.On("UpdateStatus", mock.Anything, int64(1001), domain.ProfileStatusSubmitted).Return(nil)

		uc := usecase.NewProfileUsecase(profileRepo, draftRepo)
		result, err := uc.Submit(ctx, 1001)

		assert.NoError(t, err)
		assert.Equal(t, domain.ProfileStatusSubmitted, result.Status)
		profileRepo.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1001), domain.ProfileStatusSubmitted)
	})

	t.Run("Re-submitting is idempotent and does not touch the row", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		submitted := draftProfile()
		submitted.Status = domain.ProfileStatusSubmitted
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(submitted, nil)

		uc := usecase.NewProfileUsecase(profileRepo, draftRepo)
		result, err := uc.Submit(ctx, 1001)

		assert.NoError(t, err)
		assert.Equal(t, domain.ProfileStatusSubmitted, result.Status)
		profileRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing profile yields not found", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(9999)).Return(nil, nil)

		uc := usecase.NewProfileUsecase(profileRepo, draftRepo)
		_, err := uc.Submit(ctx, 9999)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
	})
}

func TestGetDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns profile with sections", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1001)).Return(draftProfile(), nil)
		draftRepo.On("GetSections", mock.Anything, int64(1001)).Return(&domain.DraftSections{
			Skills: []domain.Skill{{Name: "Go", Source: domain.SkillSourceCustom}},
		}, nil)

		uc := usecase.NewProfileUsecase(profileRepo, draftRepo)
		draft, err := uc.GetDraft(ctx, 1001)

		assert.NoError(t, err)
		assert.Equal(t, int64(1001), draft.Profile.ID)
		assert.Len(t, draft.Sections.Skills, 1)
	})

	t.Run("Missing profile yields not found", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		draftRepo := new(MockDraftRepo)
		profileRepo.On("GetByID", mock.Anything, int64(9999)).Return(nil, nil)

		uc := usecase.NewProfileUsecase(profileRepo, draftRepo)
		_, err := uc.GetDraft(ctx, 9999)

		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
		draftRepo.AssertNotCalled(t, "GetSections", mock.Anything, mock.Anything)
	})
}
