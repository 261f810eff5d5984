package derive

import (
	"time"

	"go-resume-backend/internal/domain"
)

// ResolveInput is the post-replacement view of the sections a sync call
// touched, plus the profile state the inference step needs.
type ResolveInput struct {
	Educations        []domain.Education
	EducationsPresent bool

	WorkExperiences []domain.WorkExperience
	WorksPresent    bool

	EmploymentStatus domain.EmploymentStatus
	Today            time.Time
}

// Resolve recomputes the profile's derived attributes from the submitted
// child collections. It never fails: records with unusable dates are skipped,
// and sections that yield nothing leave their profile fields untouched.
func Resolve(in ResolveInput) *domain.DerivedPatch {
	patch := &domain.DerivedPatch{}

	if in.EducationsPresent {
		resolveEducation(in.Educations, patch)
	}
	if in.WorksPresent {
		resolveWork(in.WorkExperiences, in.EmploymentStatus, in.Today, patch)
	}

	return patch
}

// resolveEducation picks the highest education level and the highest degree
// independently: a stable linear scan with strict less-than, so equal-priority
// records resolve to the first occurrence in input order. Level and school
// always come from the same record; the degree may come from another.
// An empty collection clears the triple.
func resolveEducation(educations []domain.Education, patch *domain.DerivedPatch) {
	patch.SetEducation = true
	if len(educations) == 0 {
		return
	}

	best := 0
	for i := 1; i < len(educations); i++ {
		if EducationLevelRank(educations[i].LevelCode) < EducationLevelRank(educations[best].LevelCode) {
			best = i
		}
	}
	level := educations[best].LevelCode
	school := educations[best].School
	patch.EducationLevel = &level
	patch.GraduateSchool = &school

	bestDegree := 0
	for i := 1; i < len(educations); i++ {
		if DegreeRank(educations[i].DegreeCode) < DegreeRank(educations[bestDegree].DegreeCode) {
			bestDegree = i
		}
	}
	degree := educations[bestDegree].DegreeCode
	patch.Degree = &degree
}

// resolveWork computes aggregate tenure and career start from the records
// that carry a parseable start date, then infers the current employer when
// exactly one record is open-ended and the candidate says they are employed.
func resolveWork(works []domain.WorkExperience, status domain.EmploymentStatus, today time.Time, patch *domain.DerivedPatch) {
	var intervals []Interval
	for _, w := range works {
		start := ParseDate(w.StartDate)
		if start == nil {
			continue
		}
		iv := Interval{Start: *start}
		if w.EndDate != nil {
			end := ParseDate(*w.EndDate)
			if end == nil {
				// end supplied but unusable: skip the record entirely rather
				// than guessing it is ongoing
				continue
			}
			iv.End = end
		}
		intervals = append(intervals, iv)
	}

	if len(intervals) > 0 {
		totalMonths, earliest := AggregateTenure(intervals, today)
		if earliest != nil {
			patch.CareerStartDate = earliest
		}
		if label := TenureLabel(totalMonths); label != "" {
			patch.WorkYearsLabel = &label
		}
	}

	if status != domain.EmploymentEmployed {
		return
	}
	var current *domain.WorkExperience
	for i := range works {
		if works[i].EndDate == nil {
			if current != nil {
				// more than one open record; inference would be a guess
				return
			}
			current = &works[i]
		}
	}
	if current != nil {
		company := current.Company
		position := current.Position
		patch.CurrentCompany = &company
		patch.CurrentPosition = &position
	}
}
