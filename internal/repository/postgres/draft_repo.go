package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// sectionPolicy selects how a section's prior generation is removed before
// the fresh records are inserted. Skills hard-delete: the table carries a
// UNIQUE(profile_id, name) constraint that a soft-deleted row would still
// violate on re-insert. Everything else keeps the old generation invisible.
type sectionPolicy struct {
	table string
	hard  bool
}

var (
	jobPreferencePolicy = sectionPolicy{table: "job_preferences"}
	educationPolicy     = sectionPolicy{table: "educations"}
	workPolicy          = sectionPolicy{table: "work_experiences"}
	projectPolicy       = sectionPolicy{table: "project_experiences"}
	skillPolicy         = sectionPolicy{table: "skills", hard: true}
	certificatePolicy   = sectionPolicy{table: "certificates"}
	trainingPolicy      = sectionPolicy{table: "trainings"}
	languagePolicy      = sectionPolicy{table: "languages"}
)

type draftRepository struct {
	db *pgxpool.Pool
	// transaction bounds, in seconds: short lock wait, longer execution cap
	lockTimeout      int
	statementTimeout int
}

func NewDraftRepository(db *pgxpool.Pool, lockTimeoutSec, statementTimeoutSec int) domain.DraftRepository {
	return &draftRepository{
		db:               db,
		lockTimeout:      lockTimeoutSec,
		statementTimeout: statementTimeoutSec,
	}
}

// ============================================================================
// Apply Sync (Atomic Transaction)
// ============================================================================

func (r *draftRepository) ApplySync(ctx context.Context, sync *domain.SectionSync) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return mapStorageError(err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	// Bound the transaction: give up quickly on contended rows, never run
	// unbounded. SET LOCAL scopes both settings to this transaction.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%ds'", r.lockTimeout)); err != nil {
		return mapStorageError(err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%ds'", r.statementTimeout)); err != nil {
		return mapStorageError(err)
	}

	if sync.Basic != nil {
		if err := applyBasicInfo(ctx, tx, sync.ProfileID, sync.Basic); err != nil {
			return mapStorageError(err)
		}
	}

	if sync.JobPreferences != nil {
		if err := replaceJobPreferences(ctx, tx, sync.ProfileID, sync.JobPreferences); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.Educations != nil {
		if err := replaceEducations(ctx, tx, sync.ProfileID, sync.Educations); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.WorkExperiences != nil {
		if err := replaceWorkExperiences(ctx, tx, sync.ProfileID, sync.WorkExperiences); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.ProjectExperiences != nil {
		if err := replaceProjectExperiences(ctx, tx, sync.ProfileID, sync.ProjectExperiences); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.Skills != nil {
		if err := replaceSkills(ctx, tx, sync.ProfileID, sync.Skills); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.Certificates != nil {
		if err := replaceCertificates(ctx, tx, sync.ProfileID, sync.Certificates); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.Trainings != nil {
		if err := replaceTrainings(ctx, tx, sync.ProfileID, sync.Trainings); err != nil {
			return mapStorageError(err)
		}
	}
	if sync.Languages != nil {
		if err := replaceLanguages(ctx, tx, sync.ProfileID, sync.Languages); err != nil {
			return mapStorageError(err)
		}
	}

	if sync.Derived != nil {
		if err := applyDerived(ctx, tx, sync.ProfileID, sync.Derived); err != nil {
			return mapStorageError(err)
		}
	}

	// Server-controlled last-modified timestamp, bumped on every sync
	if _, err := tx.Exec(ctx, `UPDATE profiles SET updated_at = NOW() WHERE id = $1`, sync.ProfileID); err != nil {
		return mapStorageError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func applyBasicInfo(ctx context.Context, tx pgx.Tx, profileID int64, b *domain.BasicPatch) error {
	var employmentStatus *string
	if b.EmploymentStatus != nil {
		s := string(*b.EmploymentStatus)
		employmentStatus = &s
	}

	query := `
		UPDATE profiles SET
			gender = COALESCE($2, gender),
			birth_date = COALESCE($3, birth_date),
			age = COALESCE($4, age),
			id_number = COALESCE($5, id_number),
			marital_status = COALESCE($6, marital_status),
			household_city = COALESCE($7, household_city),
			current_city = COALESCE($8, current_city),
			address = COALESCE($9, address),
			id_front_url = COALESCE($10, id_front_url),
			id_back_url = COALESCE($11, id_back_url),
			avatar_url = COALESCE($12, avatar_url),
			highlights = COALESCE($13, highlights),
			employment_status = COALESCE($14, employment_status),
			updated_at = NOW()
		WHERE id = $1`

	_, err := tx.Exec(ctx, query, profileID,
		b.Gender, b.BirthDate, b.Age, b.IDNumber, b.MaritalStatus,
		b.HouseholdCity, b.CurrentCity, b.Address,
		b.IDFrontURL, b.IDBackURL, b.AvatarURL, b.Highlights,
		employmentStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update basic info: %w", err)
	}
	return nil
}

// clearSection removes the section's prior generation per its policy
func clearSection(ctx context.Context, tx pgx.Tx, p sectionPolicy, profileID int64) error {
	if p.hard {
		_, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE profile_id = $1`, p.table), profileID)
		return err
	}
	_, err := tx.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET deleted = TRUE, updated_at = NOW() WHERE profile_id = $1 AND deleted = FALSE`, p.table),
		profileID)
	return err
}

func replaceJobPreferences(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.JobPreference) error {
	if err := clearSection(ctx, tx, jobPreferencePolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear job preferences: %w", err)
	}

	query := `
		INSERT INTO job_preferences (profile_id, position, industry, city, salary_band, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`
	for _, jp := range items {
		if _, err := tx.Exec(ctx, query, profileID, jp.Position, jp.Industry, jp.City, jp.SalaryBand); err != nil {
			return fmt.Errorf("failed to insert job preference: %w", err)
		}
	}
	return nil
}

func replaceEducations(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.Education) error {
	if err := clearSection(ctx, tx, educationPolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear educations: %w", err)
	}

	query := `
		INSERT INTO educations (
			profile_id, school, major, level_code, degree_code,
			start_date, end_date, full_time, description, attachments,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`
	for _, e := range items {
		_, err := tx.Exec(ctx, query, profileID,
			e.School, e.Major, e.LevelCode, e.DegreeCode,
			toDate(e.StartDate), toDatePtr(e.EndDate), e.FullTime, e.Description,
			pq.Array(e.Attachments),
		)
		if err != nil {
			return fmt.Errorf("failed to insert education: %w", err)
		}
	}
	return nil
}

func replaceWorkExperiences(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.WorkExperience) error {
	if err := clearSection(ctx, tx, workPolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear work experiences: %w", err)
	}

	query := `
		INSERT INTO work_experiences (
			profile_id, company, industry, position, city, department,
			start_date, end_date, responsibilities, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())`
	for _, w := range items {
		_, err := tx.Exec(ctx, query, profileID,
			w.Company, w.Industry, w.Position, w.City, w.Department,
			toDate(w.StartDate), toDatePtr(w.EndDate), w.Responsibilities,
		)
		if err != nil {
			return fmt.Errorf("failed to insert work experience: %w", err)
		}
	}
	return nil
}

func replaceProjectExperiences(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.ProjectExperience) error {
	if err := clearSection(ctx, tx, projectPolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear project experiences: %w", err)
	}

	query := `
		INSERT INTO project_experiences (
			profile_id, name, company, role, start_date, end_date,
			technologies, description, responsibilities, achievements,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`
	for _, p := range items {
		_, err := tx.Exec(ctx, query, profileID,
			p.Name, p.Company, p.Role, toDate(p.StartDate), toDatePtr(p.EndDate),
			p.Technologies, p.Description, p.Responsibilities, p.Achievements,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project experience: %w", err)
		}
	}
	return nil
}

func replaceSkills(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.Skill) error {
	if err := clearSection(ctx, tx, skillPolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}

	query := `
		INSERT INTO skills (profile_id, name, catalog_id, proficiency, years, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	for _, s := range items {
		if _, err := tx.Exec(ctx, query, profileID, s.Name, s.CatalogID, s.Proficiency, s.Years, string(s.Source)); err != nil {
			return fmt.Errorf("failed to insert skill %s: %w", s.Name, err)
		}
	}
	return nil
}

func replaceCertificates(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.Certificate) error {
	if err := clearSection(ctx, tx, certificatePolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear certificates: %w", err)
	}

	query := `
		INSERT INTO certificates (profile_id, name, issued_date, expires_date, file_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`
	for _, c := range items {
		if _, err := tx.Exec(ctx, query, profileID, c.Name, toDatePtr(c.IssuedDate), toDatePtr(c.ExpiresDate), c.FileURL); err != nil {
			return fmt.Errorf("failed to insert certificate: %w", err)
		}
	}
	return nil
}

func replaceTrainings(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.Training) error {
	if err := clearSection(ctx, tx, trainingPolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear trainings: %w", err)
	}

	query := `
		INSERT INTO trainings (profile_id, name, organizer, start_date, end_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	for _, t := range items {
		if _, err := tx.Exec(ctx, query, profileID, t.Name, t.Organizer, toDatePtr(t.StartDate), toDatePtr(t.EndDate), t.Description); err != nil {
			return fmt.Errorf("failed to insert training: %w", err)
		}
	}
	return nil
}

func replaceLanguages(ctx context.Context, tx pgx.Tx, profileID int64, items []domain.Language) error {
	if err := clearSection(ctx, tx, languagePolicy, profileID); err != nil {
		return fmt.Errorf("failed to clear languages: %w", err)
	}

	query := `
		INSERT INTO languages (profile_id, name, proficiency, certificate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`
	for _, l := range items {
		if _, err := tx.Exec(ctx, query, profileID, l.Name, l.Proficiency, l.Certificate); err != nil {
			return fmt.Errorf("failed to insert language: %w", err)
		}
	}
	return nil
}

func applyDerived(ctx context.Context, tx pgx.Tx, profileID int64, d *domain.DerivedPatch) error {
	if d.SetEducation {
		// nil pointers write NULL: an empty education section clears the triple
		query := `UPDATE profiles SET education_level = $2, degree = $3, graduate_school = $4 WHERE id = $1`
		if _, err := tx.Exec(ctx, query, profileID, d.EducationLevel, d.Degree, d.GraduateSchool); err != nil {
			return fmt.Errorf("failed to update derived education: %w", err)
		}
	}

	if d.CareerStartDate != nil || d.WorkYearsLabel != nil {
		query := `
			UPDATE profiles SET
				career_start_date = COALESCE($2, career_start_date),
				work_years_label = COALESCE($3, work_years_label)
			WHERE id = $1`
		if _, err := tx.Exec(ctx, query, profileID, d.CareerStartDate, d.WorkYearsLabel); err != nil {
			return fmt.Errorf("failed to update derived tenure: %w", err)
		}
	}

	if d.CurrentCompany != nil && d.CurrentPosition != nil {
		query := `UPDATE profiles SET current_company = $2, current_position = $3 WHERE id = $1`
		if _, err := tx.Exec(ctx, query, profileID, d.CurrentCompany, d.CurrentPosition); err != nil {
			return fmt.Errorf("failed to update current employer: %w", err)
		}
	}

	return nil
}

// ============================================================================
// Get Sections
// ============================================================================

func (r *draftRepository) GetSections(ctx context.Context, profileID int64) (*domain.DraftSections, error) {
	sections := &domain.DraftSections{
		JobPreferences:     []domain.JobPreference{},
		Educations:         []domain.Education{},
		WorkExperiences:    []domain.WorkExperience{},
		ProjectExperiences: []domain.ProjectExperience{},
		Skills:             []domain.Skill{},
		Certificates:       []domain.Certificate{},
		Trainings:          []domain.Training{},
		Languages:          []domain.Language{},
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, position, industry, city, salary_band, created_at, updated_at
		FROM job_preferences WHERE profile_id = $1 AND deleted = FALSE ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job preferences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var jp domain.JobPreference
		if err := rows.Scan(&jp.ID, &jp.ProfileID, &jp.Position, &jp.Industry, &jp.City, &jp.SalaryBand, &jp.CreatedAt, &jp.UpdatedAt); err != nil {
			return nil, err
		}
		sections.JobPreferences = append(sections.JobPreferences, jp)
	}

	eduRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, school, major, level_code, degree_code,
		       start_date, end_date, full_time, description, attachments, created_at, updated_at
		FROM educations WHERE profile_id = $1 AND deleted = FALSE ORDER BY start_date DESC NULLS LAST, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch educations: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e domain.Education
		var startDate, endDate *time.Time
		var attachments []string
		err := eduRows.Scan(&e.ID, &e.ProfileID, &e.School, &e.Major, &e.LevelCode, &e.DegreeCode,
			&startDate, &endDate, &e.FullTime, &e.Description, pq.Array(&attachments), &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		e.StartDate, e.EndDate = fromDates(startDate, endDate)
		e.Attachments = attachments
		sections.Educations = append(sections.Educations, e)
	}

	workRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, company, industry, position, city, department,
		       start_date, end_date, responsibilities, created_at, updated_at
		FROM work_experiences WHERE profile_id = $1 AND deleted = FALSE ORDER BY start_date DESC NULLS LAST, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work experiences: %w", err)
	}
	defer workRows.Close()
	for workRows.Next() {
		var w domain.WorkExperience
		var startDate, endDate *time.Time
		err := workRows.Scan(&w.ID, &w.ProfileID, &w.Company, &w.Industry, &w.Position, &w.City, &w.Department,
			&startDate, &endDate, &w.Responsibilities, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		w.StartDate, w.EndDate = fromDates(startDate, endDate)
		sections.WorkExperiences = append(sections.WorkExperiences, w)
	}

	projRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, company, role, start_date, end_date,
		       technologies, description, responsibilities, achievements, created_at, updated_at
		FROM project_experiences WHERE profile_id = $1 AND deleted = FALSE ORDER BY start_date DESC NULLS LAST, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project experiences: %w", err)
	}
	defer projRows.Close()
	for projRows.Next() {
		var p domain.ProjectExperience
		var startDate, endDate *time.Time
		err := projRows.Scan(&p.ID, &p.ProfileID, &p.Name, &p.Company, &p.Role, &startDate, &endDate,
			&p.Technologies, &p.Description, &p.Responsibilities, &p.Achievements, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.StartDate, p.EndDate = fromDates(startDate, endDate)
		sections.ProjectExperiences = append(sections.ProjectExperiences, p)
	}

	skillRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, catalog_id, proficiency, years, source, created_at, updated_at
		FROM skills WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s domain.Skill
		var source string
		if err := skillRows.Scan(&s.ID, &s.ProfileID, &s.Name, &s.CatalogID, &s.Proficiency, &s.Years, &source, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Source = domain.SkillSource(source)
		sections.Skills = append(sections.Skills, s)
	}

	certRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, issued_date, expires_date, file_url, created_at, updated_at
		FROM certificates WHERE profile_id = $1 AND deleted = FALSE ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer certRows.Close()
	for certRows.Next() {
		var c domain.Certificate
		var issued, expires *time.Time
		if err := certRows.Scan(&c.ID, &c.ProfileID, &c.Name, &issued, &expires, &c.FileURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if issued != nil {
			s := issued.Format("2006-01-02")
			c.IssuedDate = &s
		}
		if expires != nil {
			s := expires.Format("2006-01-02")
			c.ExpiresDate = &s
		}
		sections.Certificates = append(sections.Certificates, c)
	}

	trainRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, organizer, start_date, end_date, description, created_at, updated_at
		FROM trainings WHERE profile_id = $1 AND deleted = FALSE ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainings: %w", err)
	}
	defer trainRows.Close()
	for trainRows.Next() {
		var t domain.Training
		var startDate, endDate *time.Time
		if err := trainRows.Scan(&t.ID, &t.ProfileID, &t.Name, &t.Organizer, &startDate, &endDate, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if startDate != nil {
			s := startDate.Format("2006-01-02")
			t.StartDate = &s
		}
		if endDate != nil {
			s := endDate.Format("2006-01-02")
			t.EndDate = &s
		}
		sections.Trainings = append(sections.Trainings, t)
	}

	langRows, err := r.db.Query(ctx, `
		SELECT id, profile_id, name, proficiency, certificate, created_at, updated_at
		FROM languages WHERE profile_id = $1 AND deleted = FALSE ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var l domain.Language
		if err := langRows.Scan(&l.ID, &l.ProfileID, &l.Name, &l.Proficiency, &l.Certificate, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		sections.Languages = append(sections.Languages, l)
	}

	return sections, nil
}

// ============================================================================
// Helpers
// ============================================================================

// toDate converts a YYYY-MM-DD payload string to a nullable column value
func toDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func toDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	return toDate(*s)
}

func fromDates(start, end *time.Time) (string, *string) {
	var startStr string
	if start != nil {
		startStr = start.Format("2006-01-02")
	}
	var endStr *string
	if end != nil {
		s := end.Format("2006-01-02")
		endStr = &s
	}
	return startStr, endStr
}

// mapStorageError translates driver errors to the engine's error taxonomy.
// Lock waits (55P03) and statement cancellations (57014) are the transaction
// bounds firing; everything else is a generic persistence failure.
func mapStorageError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "57014":
			return apperror.PersistenceTimeout("Storage operation timed out", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.PersistenceTimeout("Storage operation timed out", err)
	}
	return apperror.PersistenceFailure(err)
}
