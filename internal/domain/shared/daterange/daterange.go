package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: checkout must be after checkin")

// StayRange represents a half-open interval [checkIn, checkOut) over calendar
// dates. Times are truncated to UTC midnight so the range is purely date-based.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a StayRange from the given instants, normalizing both to dates.
func New(checkIn, checkOut time.Time) (StayRange, error) {
	dr := StayRange{CheckIn: Date(checkIn), CheckOut: Date(checkOut)}
	if err := dr.Validate(); err != nil {
		return StayRange{}, err
	}
	return dr, nil
}

func (dr StayRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts stayed nights: one per date from check-in (inclusive) to
// check-out (exclusive). The checkout night is not charged.
func (dr StayRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

// EachNight invokes fn for every stayed night in chronological order.
func (dr StayRange) EachNight(fn func(night time.Time)) {
	for d := dr.CheckIn; d.Before(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// ContainsDate reports whether t (as a date) falls inside the half-open range.
func (dr StayRange) ContainsDate(t time.Time) bool {
	d := Date(t)
	return !d.Before(dr.CheckIn) && d.Before(dr.CheckOut)
}

// Overlaps reports whether two ranges share at least one night.
func (dr StayRange) Overlaps(other StayRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// Date truncates an instant to UTC midnight.
func Date(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
