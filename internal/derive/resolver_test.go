package derive_test

import (
	"testing"
	"time"

	"go-resume-backend/internal/derive"
	"go-resume-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveEducation(t *testing.T) {
	t.Run("Highest level wins", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			Educations: []domain.Education{
				{School: "State College", LevelCode: "bachelor", DegreeCode: "bachelor"},
				{School: "Tech University", LevelCode: "master", DegreeCode: "master"},
				{School: "City College", LevelCode: "bachelor", DegreeCode: "bachelor"},
			},
			EducationsPresent: true,
		})

		assert.True(t, patch.SetEducation)
		assert.Equal(t, "master", *patch.EducationLevel)
		assert.Equal(t, "Tech University", *patch.GraduateSchool)
		assert.Equal(t, "master", *patch.Degree)
	})

	t.Run("Equal priority resolves to first occurrence", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			Educations: []domain.Education{
				{School: "First University", LevelCode: "master", DegreeCode: "master"},
				{School: "Second University", LevelCode: "master", DegreeCode: "master"},
			},
			EducationsPresent: true,
		})

		assert.Equal(t, "First University", *patch.GraduateSchool)
	})

	t.Run("Level and degree may come from different records", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			Educations: []domain.Education{
				{School: "Tech University", LevelCode: "master", DegreeCode: "none"},
				{School: "Research Institute", LevelCode: "bachelor", DegreeCode: "doctorate"},
			},
			EducationsPresent: true,
		})

		assert.Equal(t, "master", *patch.EducationLevel)
		assert.Equal(t, "Tech University", *patch.GraduateSchool)
		assert.Equal(t, "doctorate", *patch.Degree)
	})

	t.Run("Unknown codes rank below every known code", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			Educations: []domain.Education{
				{School: "Mystery School", LevelCode: "bootcamp", DegreeCode: "honorary"},
				{School: "Trade School", LevelCode: "technical_secondary", DegreeCode: "none"},
			},
			EducationsPresent: true,
		})

		assert.Equal(t, "technical_secondary", *patch.EducationLevel)
		assert.Equal(t, "Trade School", *patch.GraduateSchool)
		assert.Equal(t, "none", *patch.Degree)
	})

	t.Run("Empty collection clears the triple", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			Educations:        []domain.Education{},
			EducationsPresent: true,
		})

		assert.True(t, patch.SetEducation)
		assert.Nil(t, patch.EducationLevel)
		assert.Nil(t, patch.Degree)
		assert.Nil(t, patch.GraduateSchool)
	})

	t.Run("Untouched section leaves the triple alone", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{EducationsPresent: false})
		assert.False(t, patch.SetEducation)
	})
}

func TestResolveWork(t *testing.T) {
	today := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Tenure and career start from parseable records", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "2018-06-01", EndDate: strPtr("2020-06-01")},
				{Company: "Globex", StartDate: "2021-01-01", EndDate: strPtr("2022-01-01")},
			},
			WorksPresent: true,
			Today:        today,
		})

		assert.Equal(t, time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC), *patch.CareerStartDate)
		assert.Equal(t, "3 years", *patch.WorkYearsLabel)
	})

	t.Run("Under a year writes no label", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "2021-01-01", EndDate: strPtr("2021-07-01")},
			},
			WorksPresent: true,
			Today:        today,
		})

		assert.Nil(t, patch.WorkYearsLabel)
		assert.NotNil(t, patch.CareerStartDate)
	})

	t.Run("Unparseable start date skips the record", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "June 2018", EndDate: strPtr("2020-06-01")},
			},
			WorksPresent: true,
			Today:        today,
		})

		assert.Nil(t, patch.CareerStartDate)
		assert.Nil(t, patch.WorkYearsLabel)
	})

	t.Run("Unparseable end date skips the record", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", StartDate: "2018-06-01", EndDate: strPtr("present")},
			},
			WorksPresent: true,
			Today:        today,
		})

		assert.Nil(t, patch.CareerStartDate)
	})

	t.Run("Single open record with employed status infers employer", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Globex", Position: "Analyst", StartDate: "2018-01-01", EndDate: strPtr("2020-01-01")},
				{Company: "Acme", Position: "Engineer", StartDate: "2020-02-01"},
			},
			WorksPresent:     true,
			EmploymentStatus: domain.EmploymentEmployed,
			Today:            today,
		})

		assert.Equal(t, "Acme", *patch.CurrentCompany)
		assert.Equal(t, "Engineer", *patch.CurrentPosition)
	})

	t.Run("Unemployed status blocks inference", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", Position: "Engineer", StartDate: "2020-02-01"},
			},
			WorksPresent:     true,
			EmploymentStatus: domain.EmploymentUnemployed,
			Today:            today,
		})

		assert.Nil(t, patch.CurrentCompany)
		assert.Nil(t, patch.CurrentPosition)
	})

	t.Run("Multiple open records block inference but not tenure", func(t *testing.T) {
		patch := derive.Resolve(derive.ResolveInput{
			WorkExperiences: []domain.WorkExperience{
				{Company: "Acme", Position: "Engineer", StartDate: "2020-02-01"},
				{Company: "Globex", Position: "Analyst", StartDate: "2021-02-01"},
			},
			WorksPresent:     true,
			EmploymentStatus: domain.EmploymentEmployed,
			Today:            today,
		})

		assert.Nil(t, patch.CurrentCompany)
		assert.NotNil(t, patch.CareerStartDate)
		assert.NotNil(t, patch.WorkYearsLabel)
	})
}
