package derive_test

import (
	"testing"
	"time"

	"go-resume-backend/internal/derive"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCalculateAge(t *testing.T) {
	today := date(2026, time.March, 15)

	t.Run("Anniversary already passed this year", func(t *testing.T) {
		age := derive.CalculateAge(date(1990, time.January, 10), today)
		assert.NotNil(t, age)
		assert.Equal(t, 36, *age)
	})

	t.Run("Anniversary not yet reached this year", func(t *testing.T) {
		age := derive.CalculateAge(date(1990, time.June, 10), today)
		assert.NotNil(t, age)
		assert.Equal(t, 35, *age)
	})

	t.Run("Birthday today counts the full year", func(t *testing.T) {
		age := derive.CalculateAge(date(1990, time.March, 15), today)
		assert.NotNil(t, age)
		assert.Equal(t, 36, *age)
	})

	t.Run("Zero birth date yields nil", func(t *testing.T) {
		assert.Nil(t, derive.CalculateAge(time.Time{}, today))
	})

	t.Run("Future birth date yields nil", func(t *testing.T) {
		assert.Nil(t, derive.CalculateAge(date(2030, time.January, 1), today))
	})

	t.Run("Age above 150 yields nil", func(t *testing.T) {
		assert.Nil(t, derive.CalculateAge(date(1800, time.January, 1), today))
	})
}

func TestAggregateTenure(t *testing.T) {
	today := date(2026, time.March, 15)

	t.Run("Whole year closed interval", func(t *testing.T) {
		months, earliest := derive.AggregateTenure([]derive.Interval{
			{Start: date(2020, time.January, 15), End: datePtr(2021, time.January, 15)},
		}, today)
		assert.Equal(t, 12, months)
		assert.Equal(t, date(2020, time.January, 15), *earliest)
	})

	t.Run("End day before start day drops one month", func(t *testing.T) {
		months, _ := derive.AggregateTenure([]derive.Interval{
			{Start: date(2020, time.January, 20), End: datePtr(2020, time.March, 10)},
		}, today)
		assert.Equal(t, 1, months)
	})

	t.Run("Negative contribution clamps to zero", func(t *testing.T) {
		months, _ := derive.AggregateTenure([]derive.Interval{
			{Start: date(2020, time.May, 10), End: datePtr(2020, time.May, 1)},
		}, today)
		assert.Equal(t, 0, months)
	})

	t.Run("Open interval runs to today", func(t *testing.T) {
		months, _ := derive.AggregateTenure([]derive.Interval{
			{Start: date(2025, time.March, 15)},
		}, today)
		assert.Equal(t, 12, months)
	})

	t.Run("Multiple intervals are summed", func(t *testing.T) {
		months, earliest := derive.AggregateTenure([]derive.Interval{
			{Start: date(2018, time.June, 1), End: datePtr(2019, time.June, 1)},
			{Start: date(2020, time.January, 1), End: datePtr(2020, time.July, 1)},
		}, today)
		assert.Equal(t, 18, months)
		assert.Equal(t, date(2018, time.June, 1), *earliest)
	})

	t.Run("Overlapping intervals double count", func(t *testing.T) {
		// two fully concurrent year-long jobs read as 24 months, not 12
		months, _ := derive.AggregateTenure([]derive.Interval{
			{Start: date(2020, time.January, 1), End: datePtr(2021, time.January, 1)},
			{Start: date(2020, time.January, 1), End: datePtr(2021, time.January, 1)},
		}, today)
		assert.Equal(t, 24, months)
	})

	t.Run("Zero start dates are skipped", func(t *testing.T) {
		months, earliest := derive.AggregateTenure([]derive.Interval{
			{Start: time.Time{}, End: datePtr(2021, time.January, 1)},
		}, today)
		assert.Equal(t, 0, months)
		assert.Nil(t, earliest)
	})
}

func TestTenureLabel(t *testing.T) {
	assert.Equal(t, "New graduate", derive.TenureLabel(0))
	assert.Equal(t, "", derive.TenureLabel(6))
	assert.Equal(t, "", derive.TenureLabel(11))
	assert.Equal(t, "1 year", derive.TenureLabel(12))
	assert.Equal(t, "1 year", derive.TenureLabel(23))
	assert.Equal(t, "2 years", derive.TenureLabel(24))
	assert.Equal(t, "9 years", derive.TenureLabel(119))
	assert.Equal(t, "10+ years", derive.TenureLabel(120))
	assert.Equal(t, "10+ years", derive.TenureLabel(480))
}

func TestBirthDateFromIDNumber(t *testing.T) {
	t.Run("Valid number yields embedded date", func(t *testing.T) {
		birth := derive.BirthDateFromIDNumber("110101199003157890")
		assert.NotNil(t, birth)
		assert.Equal(t, date(1990, time.March, 15), *birth)
	})

	t.Run("Wrong length yields nil", func(t *testing.T) {
		assert.Nil(t, derive.BirthDateFromIDNumber("12345"))
	})

	t.Run("Unparseable embedded date yields nil", func(t *testing.T) {
		assert.Nil(t, derive.BirthDateFromIDNumber("110101199013457890"))
	})
}

func TestParseDate(t *testing.T) {
	parsed := derive.ParseDate("2021-06-01")
	assert.NotNil(t, parsed)
	assert.Equal(t, date(2021, time.June, 1), *parsed)

	assert.Nil(t, derive.ParseDate(""))
	assert.Nil(t, derive.ParseDate("06/01/2021"))
	assert.Nil(t, derive.ParseDate("2021-13-01"))
}
