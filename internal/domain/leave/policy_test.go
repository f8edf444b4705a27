package leave

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalDays(t *testing.T) {
	assert.Equal(t, 1.0, TotalDays(date(2026, 3, 2), date(2026, 3, 2), false))
	assert.Equal(t, 3.0, TotalDays(date(2026, 3, 2), date(2026, 3, 4), false))
	assert.Equal(t, 0.5, TotalDays(date(2026, 3, 2), date(2026, 3, 2), true))
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	return errs.ToMap()
}

func TestValidateRulesCasual(t *testing.T) {
	today := date(2026, 3, 2)

	t.Run("valid with two days notice", func(t *testing.T) {
		start, end := date(2026, 3, 4), date(2026, 3, 6)
		err := ValidateRules(TypeCasual, start, end, TotalDays(start, end, false), false, "", "", today)
		assert.NoError(t, err)
	})

	t.Run("short notice rejected", func(t *testing.T) {
		start, end := date(2026, 3, 3), date(2026, 3, 3)
		err := ValidateRules(TypeCasual, start, end, 1, false, "", "", today)
		assert.Contains(t, fieldErrors(t, err), "start_date")
	})

	t.Run("over four days rejected", func(t *testing.T) {
		start, end := date(2026, 3, 9), date(2026, 3, 13)
		err := ValidateRules(TypeCasual, start, end, TotalDays(start, end, false), false, "", "", today)
		assert.Contains(t, fieldErrors(t, err), "end_date")
	})
}

func TestValidateRulesSick(t *testing.T) {
	today := date(2026, 3, 10)

	t.Run("backdate within a week allowed", func(t *testing.T) {
		start, end := date(2026, 3, 5), date(2026, 3, 6)
		err := ValidateRules(TypeSick, start, end, 2, false, "", "", today)
		assert.NoError(t, err)
	})

	t.Run("backdate beyond a week rejected", func(t *testing.T) {
		start, end := date(2026, 3, 1), date(2026, 3, 2)
		err := ValidateRules(TypeSick, start, end, 2, false, "", "", today)
		assert.Contains(t, fieldErrors(t, err), "start_date")
	})

	t.Run("long sick leave needs a document", func(t *testing.T) {
		start, end := date(2026, 3, 9), date(2026, 3, 12)
		err := ValidateRules(TypeSick, start, end, 4, false, "", "", today)
		assert.Contains(t, fieldErrors(t, err), "document_url")

		err = ValidateRules(TypeSick, start, end, 4, false, "", "https://docs.example/note.pdf", today)
		assert.NoError(t, err)
	})
}

func TestValidateRulesHalfDay(t *testing.T) {
	today := date(2026, 3, 2)

	t.Run("valid half-day", func(t *testing.T) {
		d := date(2026, 3, 3)
		err := ValidateRules(TypeHalfDay, d, d, 0.5, true, string(SessionMorning), "", today)
		assert.NoError(t, err)
	})

	t.Run("session required", func(t *testing.T) {
		d := date(2026, 3, 3)
		err := ValidateRules(TypeHalfDay, d, d, 0.5, true, "", "", today)
		assert.Contains(t, fieldErrors(t, err), "session")
	})

	t.Run("must cover a single day", func(t *testing.T) {
		err := ValidateRules(TypeHalfDay, date(2026, 3, 3), date(2026, 3, 4), 0.5, true, string(SessionAfternoon), "", today)
		assert.Contains(t, fieldErrors(t, err), "end_date")
	})
}

func TestValidateRulesCommon(t *testing.T) {
	today := date(2026, 3, 2)

	err := ValidateRules(TypeSick, date(2026, 3, 5), date(2026, 3, 4), -1, false, "", "", today)
	m := fieldErrors(t, err)
	assert.Contains(t, m, "end_date")
	assert.Contains(t, m, "total_days")
}

func TestAutoApprovable(t *testing.T) {
	assert.True(t, AutoApprovable(TypeSick, 1, 0))
	assert.True(t, AutoApprovable(TypeSick, 2, 0))
	assert.True(t, AutoApprovable(TypeSick, 1, 1))

	// Request alone is short enough but the month is exhausted.
	assert.False(t, AutoApprovable(TypeSick, 1, 2))
	assert.False(t, AutoApprovable(TypeSick, 2, 0.5))
	assert.False(t, AutoApprovable(TypeSick, 3, 0))

	// Fast path is sick-only.
	assert.False(t, AutoApprovable(TypeCasual, 1, 0))
	assert.False(t, AutoApprovable(TypeHalfDay, 0.5, 0))
}
