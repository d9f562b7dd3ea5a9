package hours_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shyakx/akazuba-florist/pkg/hours"
)

// kigali is UTC+2 with no daylight saving
var kigali = time.FixedZone("CAT", 2*60*60)

func TestAtOpenHours(t *testing.T) {
	status := hours.At(time.Date(2026, 8, 30, 10, 0, 0, 0, kigali))
	assert.True(t, status.IsOpen)
	assert.Empty(t, status.NextOpenTime)
	assert.Equal(t, "8:00 PM", status.NextCloseTime)
}

func TestAtBoundaries(t *testing.T) {
	// Opens at 8 sharp
	assert.True(t, hours.At(time.Date(2026, 8, 30, 8, 0, 0, 0, kigali)).IsOpen)
	assert.False(t, hours.At(time.Date(2026, 8, 30, 7, 59, 0, 0, kigali)).IsOpen)

	// Closed from 8 PM
	assert.True(t, hours.At(time.Date(2026, 8, 30, 19, 59, 0, 0, kigali)).IsOpen)
	assert.False(t, hours.At(time.Date(2026, 8, 30, 20, 0, 0, 0, kigali)).IsOpen)
}

func TestAtClosedReportsNextOpen(t *testing.T) {
	status := hours.At(time.Date(2026, 8, 30, 22, 30, 0, 0, kigali))
	assert.False(t, status.IsOpen)
	assert.Equal(t, "8:00 AM", status.NextOpenTime)
}

func TestAtConvertsFromOtherZones(t *testing.T) {
	// 07:00 UTC is 09:00 in Kigali
	status := hours.At(time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC))
	assert.True(t, status.IsOpen)
}

func TestHoursStrings(t *testing.T) {
	assert.Equal(t, "Monday - Sunday: 8:00 AM - 8:00 PM", hours.String())
	assert.Equal(t, "Mon-Sun: 8AM-8PM", hours.ShortString())
}
