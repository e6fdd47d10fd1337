package validator

import (
	"strings"
	"time"
)

// TimeLayout is the wire format of reservation times.
const TimeLayout = "15:04"

// Submission validation messages.
const (
	MsgNameRequired   = "name is required"
	MsgGuestsInvalid  = "guests must be at least 1"
	MsgPartyInvalid   = "party size must be at least 1"
	MsgDatePast       = "reservation date in the past"
	MsgInvalidTime    = "time must be in HH:MM format"
	MsgContactMissing = "email or phone is required"
)

// ValidateBooking checks a hotel booking before it is submitted. Date
// rules are those of ValidateStay.
func ValidateBooking(checkIn, checkOut string, guests int, name, email string, now time.Time) Result {
	var r Result

	if strings.TrimSpace(name) == "" {
		r.add(MsgNameRequired)
	}
	if strings.TrimSpace(email) == "" {
		r.add(MsgContactMissing)
	}
	if guests < 1 {
		r.add(MsgGuestsInvalid)
	}

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

	return r.done()
}

// ValidateReservation checks a table reservation before it is submitted.
func ValidateReservation(date, at string, partySize int, name, phone string, now time.Time) Result {
	var r Result

	if strings.TrimSpace(name) == "" {
		r.add(MsgNameRequired)
	}
	if strings.TrimSpace(phone) == "" {
		r.add(MsgContactMissing)
	}
	if partySize < 1 {
		r.add(MsgPartyInvalid)
	}

	if d, err := ParseDate(date); err != nil {
		r.add(MsgInvalidDate)
	} else if day(d).Before(day(now)) {
		r.add(MsgDatePast)
	}
	if _, err := time.Parse(TimeLayout, strings.TrimSpace(at)); err != nil {
		r.add(MsgInvalidTime)
	}

	return r.done()
}
