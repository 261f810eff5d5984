package postgres

import (
	"context"
	"errors"
	"time"

	"go-resume-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	query := `
		SELECT
			id, tenant_id, name, COALESCE(phone, ''), COALESCE(email, ''),
			gender, birth_date, age, id_number, marital_status,
			household_city, current_city, address,
			id_front_url, id_back_url, avatar_url, highlights,
			employment_status,
			education_level, degree, graduate_school,
			work_years_label, career_start_date,
			current_company, current_position,
			status, created_at, updated_at
		FROM profiles
		WHERE id = $1 AND deleted = FALSE`

	var p domain.Profile
	var birthDate, careerStart *time.Time
	var employmentStatus, status string

	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Phone, &p.Email,
		&p.Gender, &birthDate, &p.Age, &p.IDNumber, &p.MaritalStatus,
		&p.HouseholdCity, &p.CurrentCity, &p.Address,
		&p.IDFrontURL, &p.IDBackURL, &p.AvatarURL, &p.Highlights,
		&employmentStatus,
		&p.EducationLevel, &p.Degree, &p.GraduateSchool,
		&p.WorkYearsLabel, &careerStart,
		&p.CurrentCompany, &p.CurrentPosition,
		&status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p.EmploymentStatus = domain.EmploymentStatus(employmentStatus)
	p.Status = domain.ProfileStatus(status)

	// Format dates YYYY-MM-DD
	if birthDate != nil {
		s := birthDate.Format("2006-01-02")
		p.BirthDate = &s
	}
	if careerStart != nil {
		s := careerStart.Format("2006-01-02")
		p.CareerStartDate = &s
	}

	return &p, nil
}

func (r *profileRepository) UpdateStatus(ctx context.Context, id int64, status domain.ProfileStatus) error {
	query := `UPDATE profiles SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted = FALSE`
	cmdTag, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return errors.New("profile not found for status update")
	}
	return nil
}
