package derive

// Education level and degree codes as they appear on section records.
// The rank tables are the single source of truth for "highest" resolution:
// lower rank wins, unknown codes sink to the bottom.

const (
	LevelDoctorate          = "doctorate"
	LevelMaster             = "master"
	LevelBachelor           = "bachelor"
	LevelAssociate          = "associate"
	LevelTechnicalSecondary = "technical_secondary"

	DegreeDoctorate = "doctorate"
	DegreeMaster    = "master"
	DegreeBachelor  = "bachelor"
	DegreeNone      = "none"
)

// unknownRank sorts any unrecognized code after every known one
const unknownRank = 999

var educationLevelRank = map[string]int{
	LevelDoctorate:          1,
	LevelMaster:             2,
	LevelBachelor:           3,
	LevelAssociate:          4,
	LevelTechnicalSecondary: 5,
}

var degreeRank = map[string]int{
	DegreeDoctorate: 1,
	DegreeMaster:    2,
	DegreeBachelor:  3,
	DegreeNone:      4,
}

// EducationLevelRank returns the priority of an education level code
func EducationLevelRank(code string) int {
	if r, ok := educationLevelRank[code]; ok {
		return r
	}
	return unknownRank
}

// DegreeRank returns the priority of a degree code
func DegreeRank(code string) int {
	if r, ok := degreeRank[code]; ok {
		return r
	}
	return unknownRank
}
