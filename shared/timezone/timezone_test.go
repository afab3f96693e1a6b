package timezone_test

import (
	"hotelier/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())

	now := timezone.Now()
	assert.Equal(t, now.Day(), today.Day())
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
}
