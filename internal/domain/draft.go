package domain

import (
	"context"
	"time"
)

// ============================================================================
// Section Records
// ============================================================================

// Dates in section records travel as YYYY-MM-DD strings. A nil end date means
// "ongoing as of now" (open-ended interval).

type JobPreference struct {
	ID         int64     `json:"id,string"`
	ProfileID  int64     `json:"profile_id,string"`
	Position   string    `json:"position" validate:"required,max=100"`
	Industry   string    `json:"industry" validate:"max=100"`
	City       string    `json:"city" validate:"max=100"`
	SalaryBand string    `json:"salary_band" validate:"max=50"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Education struct {
	ID          int64    `json:"id,string"`
	ProfileID   int64    `json:"profile_id,string"`
	School      string   `json:"school" validate:"max=200"`
	Major       string   `json:"major" validate:"max=100"`
	LevelCode   string   `json:"level_code" validate:"max=50"`
	DegreeCode  string   `json:"degree_code" validate:"max=50"`
	StartDate   string   `json:"start_date" validate:"omitempty,date_str"`
	EndDate     *string  `json:"end_date,omitempty" validate:"omitempty,date_str"`
	FullTime    *bool    `json:"full_time,omitempty"`
	Description string   `json:"description" validate:"max=2000"`
	Attachments []string `json:"attachments" validate:"max=8,dive,max=500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkExperience struct {
	ID               int64     `json:"id,string"`
	ProfileID        int64     `json:"profile_id,string"`
	Company          string    `json:"company" validate:"max=200"`
	Industry         string    `json:"industry" validate:"max=100"`
	Position         string    `json:"position" validate:"max=100"`
	City             string    `json:"city" validate:"max=100"`
	Department       string    `json:"department" validate:"max=100"`
	StartDate        string    `json:"start_date" validate:"omitempty,date_str"`
	EndDate          *string   `json:"end_date,omitempty" validate:"omitempty,date_str"`
	Responsibilities string    `json:"responsibilities" validate:"max=4000"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CurrentlyEmployed reports whether this record is an open-ended interval
func (w WorkExperience) CurrentlyEmployed() bool {
	return w.EndDate == nil
}

type ProjectExperience struct {
	ID               int64     `json:"id,string"`
	ProfileID        int64     `json:"profile_id,string"`
	Name             string    `json:"name" validate:"max=200"`
	Company          string    `json:"company" validate:"max=200"`
	Role             string    `json:"role" validate:"max=100"`
	StartDate        string    `json:"start_date" validate:"omitempty,date_str"`
	EndDate          *string   `json:"end_date,omitempty" validate:"omitempty,date_str"`
	Technologies     string    `json:"technologies" validate:"max=500"`
	Description      string    `json:"description" validate:"max=4000"`
	Responsibilities string    `json:"responsibilities" validate:"max=4000"`
	Achievements     string    `json:"achievements" validate:"max=4000"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SkillSource records whether a skill was picked from the catalog or typed in
type SkillSource string

const (
	SkillSourceCatalog SkillSource = "catalog"
	SkillSourceCustom  SkillSource = "custom"
)

type Skill struct {
	ID          int64       `json:"id,string"`
	ProfileID   int64       `json:"profile_id,string"`
	Name        string      `json:"name" validate:"max=100"`
	CatalogID   *int64      `json:"catalog_id,omitempty,string"`
	Proficiency string      `json:"proficiency" validate:"max=50"`
	Years       *int        `json:"years,omitempty" validate:"omitempty,min=0,max=80"`
	Source      SkillSource `json:"source"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Certificate struct {
	ID          int64     `json:"id,string"`
	ProfileID   int64     `json:"profile_id,string"`
	Name        string    `json:"name" validate:"max=200"`
	IssuedDate  *string   `json:"issued_date,omitempty" validate:"omitempty,date_str"`
	ExpiresDate *string   `json:"expires_date,omitempty" validate:"omitempty,date_str"`
	FileURL     *string   `json:"file_url,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Training struct {
	ID          int64     `json:"id,string"`
	ProfileID   int64     `json:"profile_id,string"`
	Name        string    `json:"name" validate:"max=200"`
	Organizer   string    `json:"organizer" validate:"max=200"`
	StartDate   *string   `json:"start_date,omitempty" validate:"omitempty,date_str"`
	EndDate     *string   `json:"end_date,omitempty" validate:"omitempty,date_str"`
	Description string    `json:"description" validate:"max=2000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Language struct {
	ID          int64     `json:"id,string"`
	ProfileID   int64     `json:"profile_id,string"`
	Name        string    `json:"name" validate:"max=100"`
	Proficiency string    `json:"proficiency" validate:"max=50"`
	Certificate string    `json:"certificate" validate:"max=200"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ============================================================================
// Draft Synchronization Payloads
// ============================================================================

// BasicInfoInput carries the mutable basic-info subset. Every field is a
// pointer: nil means "leave the stored value unmodified". Identity fields
// (name, phone, email) are deliberately absent - the auth flow owns them.
type BasicInfoInput struct {
	Gender           *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BirthDate        *string `json:"birth_date,omitempty" validate:"omitempty,date_str"`
	IDNumber         *string `json:"id_number,omitempty" validate:"omitempty,id_number"`
	MaritalStatus    *string `json:"marital_status,omitempty" validate:"omitempty,max=50"`
	HouseholdCity    *string `json:"household_city,omitempty" validate:"omitempty,max=100"`
	CurrentCity      *string `json:"current_city,omitempty" validate:"omitempty,max=100"`
	Address          *string `json:"address,omitempty" validate:"omitempty,max=500"`
	IDFrontURL       *string `json:"id_front_url,omitempty" validate:"omitempty,max=500"`
	IDBackURL        *string `json:"id_back_url,omitempty" validate:"omitempty,max=500"`
	AvatarURL        *string `json:"avatar_url,omitempty" validate:"omitempty,max=500"`
	Highlights       *string `json:"highlights,omitempty" validate:"omitempty,max=4000"`
	EmploymentStatus *string `json:"employment_status,omitempty" validate:"omitempty,oneof=employed unemployed"`
}

// SyncDraftRequest is the full-snapshot payload for one synchronization call.
//
// Section slices are partial by design: a nil slice (key absent from the JSON
// body) leaves that section untouched, while an empty non-nil slice ([] in the
// body) clears the section. encoding/json preserves exactly this distinction.
type SyncDraftRequest struct {
	BasicInfo          *BasicInfoInput     `json:"basic_info,omitempty"`
	JobPreferences     []JobPreference     `json:"job_preferences,omitempty" validate:"omitempty,dive"`
	Educations         []Education         `json:"educations,omitempty" validate:"omitempty,dive"`
	WorkExperiences    []WorkExperience    `json:"work_experiences,omitempty" validate:"omitempty,dive"`
	ProjectExperiences []ProjectExperience `json:"project_experiences,omitempty" validate:"omitempty,dive"`
	Skills             []Skill             `json:"skills,omitempty" validate:"omitempty,dive"`
	Certificates       []Certificate       `json:"certificates,omitempty" validate:"omitempty,dive"`
	Trainings          []Training          `json:"trainings,omitempty" validate:"omitempty,dive"`
	Languages          []Language          `json:"languages,omitempty" validate:"omitempty,dive"`
}

// DraftSections holds the visible records of every section for one profile
type DraftSections struct {
	JobPreferences     []JobPreference     `json:"job_preferences"`
	Educations         []Education         `json:"educations"`
	WorkExperiences    []WorkExperience    `json:"work_experiences"`
	ProjectExperiences []ProjectExperience `json:"project_experiences"`
	Skills             []Skill             `json:"skills"`
	Certificates       []Certificate       `json:"certificates"`
	Trainings          []Training          `json:"trainings"`
	Languages          []Language          `json:"languages"`
}

// ============================================================================
// Repository Payloads
// ============================================================================

// BasicPatch is the resolved basic-info update: the allowed mutable fields
// plus the birth date / age the usecase derived from them. nil = keep stored.
type BasicPatch struct {
	Gender           *string
	BirthDate        *time.Time
	Age              *int
	IDNumber         *string
	MaritalStatus    *string
	HouseholdCity    *string
	CurrentCity      *string
	Address          *string
	IDFrontURL       *string
	IDBackURL        *string
	AvatarURL        *string
	Highlights       *string
	EmploymentStatus *EmploymentStatus
}

// DerivedPatch carries recomputed profile attributes into the transaction.
//
// SetEducation distinguishes "write the triple, possibly as nulls" (education
// section was synced) from "leave it alone". The remaining pointers are
// write-if-set: tenure fields stay untouched when nothing was computable.
type DerivedPatch struct {
	SetEducation   bool
	EducationLevel *string
	Degree         *string
	GraduateSchool *string

	CareerStartDate *time.Time
	WorkYearsLabel  *string

	CurrentCompany  *string
	CurrentPosition *string
}

// SectionSync is the unit of work handed to the draft repository: everything
// that must happen inside one transaction. Section slices follow the request
// convention (nil = skip, non-nil = replace with exactly these records).
type SectionSync struct {
	ProfileID int64

	Basic *BasicPatch

	JobPreferences     []JobPreference
	Educations         []Education
	WorkExperiences    []WorkExperience
	ProjectExperiences []ProjectExperience
	Skills             []Skill
	Certificates       []Certificate
	Trainings          []Training
	Languages          []Language

	Derived *DerivedPatch
}

// ============================================================================
// Interfaces
// ============================================================================

type DraftRepository interface {
	// ApplySync executes the whole synchronization inside one transaction.
	// Either every step lands or none do.
	ApplySync(ctx context.Context, sync *SectionSync) error
	GetSections(ctx context.Context, profileID int64) (*DraftSections, error)
}

type DraftUsecase interface {
	SyncDraft(ctx context.Context, profileID int64, req *SyncDraftRequest) (*SyncResult, error)
}
