package validators

import (
	"time"

	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/timezone"
)

// Clock reports the current instant. Date rules read it on every call.
type Clock func() time.Time

const AgeOfMajority = 18

const (
	MsgInvalidAge           = "You must be at least 18 years old"
	MsgInvalidDepartureDate = "The departure date must not be in the past"
	MsgInvalidReturnDate    = "The return date must be after the departure date"
)

// AgeOn returns the age in whole years of someone born on birth, as of today.
// It compares calendar components; a birthday that has not yet come round
// this year does not count.
func AgeOn(birth, today time.Time) int {
	by, bm, bd := birth.Date()
	ty, tm, td := today.Date()

	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// Adult fails when the birth date is less than 18 years before today in loc.
func Adult(now Clock, loc *time.Location) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.Kind != models.KindDate || !v.Set {
			return nil
		}
		today := timezone.Today(now(), loc)
		birth := timezone.StartOfDay(v.Date, loc)
		if AgeOn(birth, today) < AgeOfMajority {
			return &models.ErrorEntry{Kind: models.ErrorInvalidAge, Message: MsgInvalidAge}
		}
		return nil
	}
}

// FutureDeparture fails when the departure day is before today in loc.
// Only calendar days are compared, so departing today is accepted at any hour.
func FutureDeparture(now Clock, loc *time.Location) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.Kind != models.KindDate || !v.Set {
			return nil
		}
		today := timezone.Today(now(), loc)
		if timezone.StartOfDay(v.Date, loc).Before(today) {
			return &models.ErrorEntry{Kind: models.ErrorInvalidDepartureDate, Message: MsgInvalidDepartureDate}
		}
		return nil
	}
}
