// Package hours reports whether the shop is open. The shop runs 8 AM to 8 PM
// Kigali time, seven days a week.
package hours

import (
	"fmt"
	"time"
)

const (
	OpenHour  = 8
	CloseHour = 20
	Timezone  = "Africa/Kigali"
)

// Status describes the shop's current open/closed state
type Status struct {
	IsOpen        bool   `json:"is_open"`
	CurrentTime   string `json:"current_time"`
	NextOpenTime  string `json:"next_open_time,omitempty"`
	NextCloseTime string `json:"next_close_time,omitempty"`
}

// Now returns the status at the current instant
func Now() Status {
	return At(time.Now())
}

// At returns the status at t, evaluated in Kigali time
func At(t time.Time) Status {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		// Kigali is UTC+2 year-round
		loc = time.FixedZone("CAT", 2*60*60)
	}
	local := t.In(loc)

	status := Status{
		IsOpen:      local.Hour() >= OpenHour && local.Hour() < CloseHour,
		CurrentTime: local.Format("03:04 PM"),
	}

	status.NextCloseTime = fmt.Sprintf("%d:00 PM", CloseHour-12)
	if !status.IsOpen {
		status.NextOpenTime = fmt.Sprintf("%d:00 AM", OpenHour)
	}

	return status
}

// String returns the full business hours line shown on the site
func String() string {
	return "Monday - Sunday: 8:00 AM - 8:00 PM"
}

// ShortString returns the compact business hours line
func ShortString() string {
	return "Mon-Sun: 8AM-8PM"
}
