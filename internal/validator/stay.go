// Package validator checks user input locally, before any remote call.
package validator

import (
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Stay validation messages.
const (
	MsgCheckInPast      = "check-in in the past"
	MsgCheckOutBefore   = "check-out must be after check-in"
	MsgCheckInTooFar    = "check-in too far in advance"
	MsgCityRequired     = "city is required"
	MsgCheckInRequired  = "check-in is required when check-out is set"
	MsgCheckOutRequired = "check-out is required when check-in is set"
	MsgInvalidDate      = "date must be in YYYY-MM-DD format"
)

// ErrInvalidDate is returned by ParseDate for malformed dates.
var ErrInvalidDate = zerr.New(MsgInvalidDate)

// Result lists every rule an input violated.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (r *Result) add(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r Result) done() Result {
	r.Valid = len(r.Errors) == 0
	if r.Errors == nil {
		r.Errors = []string{}
	}
	return r
}

// ValidateStay checks a check-in/check-out pair against the calendar day
// of now. Every rule is evaluated; violations accumulate.
func ValidateStay(checkIn, checkOut, now time.Time) Result {
	var r Result

	today := day(now)
	in := day(checkIn)
	out := day(checkOut)

	if in.Before(today) {
		r.add(MsgCheckInPast)
	}
	if !out.After(in) {
		r.add(MsgCheckOutBefore)
	}
	if in.After(today.AddDate(1, 0, 0)) {
		r.add(MsgCheckInTooFar)
	}

	return r.done()
}

// ValidateSearch checks the fields a hotel search needs before it can
// reach the remote service. Dates are optional but must come in pairs and
// form a valid stay.
func ValidateSearch(city, checkIn, checkOut string, now time.Time) Result {
	var r Result

	if strings.TrimSpace(city) == "" {
		r.add(MsgCityRequired)
	}

	switch {
	case checkIn == "" && checkOut == "":
	case checkIn == "":
		r.add(MsgCheckInRequired)
	case checkOut == "":
		r.add(MsgCheckOutRequired)
	default:
		in, errIn := ParseDate(checkIn)
		if errIn != nil {
			r.add("check-in " + MsgInvalidDate)
		}
		out, errOut := ParseDate(checkOut)
		if errOut != nil {
			r.add("check-out " + MsgInvalidDate)
		}
		if errIn == nil && errOut == nil {
			r.Errors = append(r.Errors, ValidateStay(in, out, now).Errors...)
		}
	}

	return r.done()
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// day zeroes the time of day, keeping the calendar date of t.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
