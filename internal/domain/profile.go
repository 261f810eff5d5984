package domain

import (
	"context"
	"time"
)

// ProfileStatus is the lifecycle state of a profile
type ProfileStatus string

const (
	ProfileStatusDraft     ProfileStatus = "draft"
	ProfileStatusSubmitted ProfileStatus = "submitted"
)

// EmploymentStatus is the candidate's self-reported employment flag
type EmploymentStatus string

const (
	EmploymentEmployed   EmploymentStatus = "employed"
	EmploymentUnemployed EmploymentStatus = "unemployed"
)

// Profile is the root record representing one candidate's resume.
//
// Identity fields (Name, Phone, Email) are owned by the auth/binding flow;
// everything else is mutated through the draft sync operation. The derived
// block (education triple, work years label, career start, current employer)
// is recomputed from child sections, never supplied directly.
//
// IDs are serialized as decimal strings: they come from a bigint sequence and
// may exceed the 32-bit range JavaScript handles without precision loss.
type Profile struct {
	ID       int64 `json:"id,string"`
	TenantID int64 `json:"tenant_id,string"`

	// Identity (auth collaborator writes these)
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	// Basic info (draft sync writes these)
	Gender           *string          `json:"gender,omitempty"`
	BirthDate        *string          `json:"birth_date,omitempty"` // YYYY-MM-DD
	Age              *int             `json:"age,omitempty"`
	IDNumber         *string          `json:"id_number,omitempty"`
	MaritalStatus    *string          `json:"marital_status,omitempty"`
	HouseholdCity    *string          `json:"household_city,omitempty"`
	CurrentCity      *string          `json:"current_city,omitempty"`
	Address          *string          `json:"address,omitempty"`
	IDFrontURL       *string          `json:"id_front_url,omitempty"`
	IDBackURL        *string          `json:"id_back_url,omitempty"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
	Highlights       *string          `json:"highlights,omitempty"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`

	// Derived from education records
	EducationLevel *string `json:"education_level,omitempty"`
	Degree         *string `json:"degree,omitempty"`
	GraduateSchool *string `json:"graduate_school,omitempty"`

	// Derived from work experience records
	WorkYearsLabel  *string `json:"work_years_label,omitempty"`
	CareerStartDate *string `json:"career_start_date,omitempty"` // YYYY-MM-DD
	CurrentCompany  *string `json:"current_company,omitempty"`
	CurrentPosition *string `json:"current_position,omitempty"`

	Status    ProfileStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ProfileDraft is a profile together with all its visible section records
type ProfileDraft struct {
	Profile  Profile       `json:"profile"`
	Sections DraftSections `json:"sections"`
}

// SubmitResult reports the profile status after a submit call
type SubmitResult struct {
	Status ProfileStatus `json:"status"`
}

// SyncResult reports the outcome of a draft synchronization call
type SyncResult struct {
	Status    string `json:"status"`
	ProfileID int64  `json:"profile_id,string"`
}

type ProfileRepository interface {
	// GetByID returns the profile or (nil, nil) when absent or soft-deleted
	GetByID(ctx context.Context, id int64) (*Profile, error)
	UpdateStatus(ctx context.Context, id int64, status ProfileStatus) error
}

type ProfileUsecase interface {
	GetDraft(ctx context.Context, profileID int64) (*ProfileDraft, error)
	// Submit flips draft -> submitted; idempotent on repeated calls
	Submit(ctx context.Context, profileID int64) (*SubmitResult, error)
}
