package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestMidnight(t *testing.T) {
	in := time.Date(2026, 3, 10, 15, 4, 5, 123, time.UTC)
	got := Midnight(in)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	// Non-UTC inputs are normalized to the UTC calendar day.
	est := time.FixedZone("EST", -5*3600)
	late := time.Date(2026, 3, 10, 22, 0, 0, 0, est) // 03:00 UTC next day
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Midnight(late))
}

func TestDefaultDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	due := DefaultDueDate(now)

	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), due)
	assert.Equal(t, 0, due.Hour())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 17, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-03-17", FormatDate(d))

	assert.Nil(t, FormatDatePtr(nil))
	got := FormatDatePtr(&d)
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-17", *got)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, 25, limit)

	// Out-of-range inputs fall back to the defaults.
	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(42, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(42), info.TotalItems)
	assert.Equal(t, 5, info.TotalPages)

	// An empty first page still reports one page.
	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)

	// Requesting past the end clamps the current page.
	clamped := NewPaginationInfo(10, 9, 10)
	assert.Equal(t, 1, clamped.CurrentPage)
}
