package form

import (
	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/validators"
)

const (
	FieldFullName       = "fullName"
	FieldNationalID     = "nationalId"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldBirthDate      = "birthDate"
	FieldAcceptTerms    = "acceptTerms"
	FieldNewsletter     = "newsletter"
	FieldDestination    = "destination"
	FieldDepartureDate  = "departureDate"
	FieldReturnDate     = "returnDate"
	FieldTripType       = "tripType"
	FieldTravelClass    = "travelClass"
	FieldNumberOfPeople = "numberOfPeople"

	// FieldSearch drives the destination filter. It is not validated and
	// not part of the submitted snapshot.
	FieldSearch = "search"
)

const (
	MinPeople     = 1
	MaxPeople     = 10
	DefaultPeople = 1

	// MaxRows bounds the passenger rows kept for an out-of-range count.
	// Counts up to it get exactly that many rows.
	MaxRows = 100
)

// FieldNames lists the form fields in display order.
var FieldNames = []string{
	FieldFullName,
	FieldNationalID,
	FieldEmail,
	FieldPhone,
	FieldBirthDate,
	FieldAcceptTerms,
	FieldNewsletter,
	FieldDestination,
	FieldDepartureDate,
	FieldReturnDate,
	FieldTripType,
	FieldTravelClass,
	FieldNumberOfPeople,
}

type fieldSpec struct {
	kind  models.ValueKind
	def   models.FieldValue
	rules []validators.Func
}

func (f *Form) buildSpecs() map[string]fieldSpec {
	cat := f.catalog
	return map[string]fieldSpec{
		FieldFullName: {
			kind: models.KindText,
			def:  models.EmptyValue(models.KindText),
			rules: []validators.Func{
				validators.Required,
				validators.MinLength(validators.NameMinLength),
				validators.Pattern(validators.NameRegex),
			},
		},
		FieldNationalID: {
			kind:  models.KindText,
			def:   models.EmptyValue(models.KindText),
			rules: []validators.Func{validators.Required, validators.NationalID},
		},
		FieldEmail: {
			kind:  models.KindText,
			def:   models.EmptyValue(models.KindText),
			rules: []validators.Func{validators.Required, validators.Email},
		},
		FieldPhone: {
			kind:  models.KindText,
			def:   models.EmptyValue(models.KindText),
			rules: []validators.Func{validators.Required, validators.Phone},
		},
		FieldBirthDate: {
			kind: models.KindDate,
			def:  models.EmptyValue(models.KindDate),
			rules: []validators.Func{
				validators.Required,
				validators.WellFormed,
				validators.Adult(f.now, f.loc),
			},
		},
		FieldAcceptTerms: {
			kind:  models.KindBool,
			def:   models.BoolValue(false),
			rules: []validators.Func{validators.RequiredTrue},
		},
		FieldNewsletter: {
			kind: models.KindBool,
			def:  models.BoolValue(false),
		},
		FieldDestination: {
			kind:  models.KindEnum,
			def:   models.EmptyValue(models.KindEnum),
			rules: []validators.Func{validators.Required, validators.OneOf(cat.Destinations())},
		},
		FieldDepartureDate: {
			kind: models.KindDate,
			def:  models.EmptyValue(models.KindDate),
			rules: []validators.Func{
				validators.Required,
				validators.WellFormed,
				validators.FutureDeparture(f.now, f.loc),
			},
		},
		FieldReturnDate: {
			kind:  models.KindDate,
			def:   models.EmptyValue(models.KindDate),
			rules: []validators.Func{f.requiredForRoundTrip, validators.WellFormed},
		},
		FieldTripType: {
			kind:  models.KindEnum,
			def:   models.EnumValue(catalog.TripOneWay),
			rules: []validators.Func{validators.Required, validators.OneOf(cat.TripTypes())},
		},
		FieldTravelClass: {
			kind:  models.KindEnum,
			def:   models.EmptyValue(models.KindEnum),
			rules: []validators.Func{validators.Required, validators.OneOf(cat.Classes())},
		},
		FieldNumberOfPeople: {
			kind: models.KindInt,
			def:  models.IntValue(DefaultPeople),
			rules: []validators.Func{
				validators.Required,
				validators.WellFormed,
				validators.BoundedCount(MinPeople, MaxPeople),
			},
		},
	}
}

// requiredForRoundTrip makes the return date mandatory only for round trips.
func (f *Form) requiredForRoundTrip(v models.FieldValue) *models.ErrorEntry {
	if f.fields[FieldTripType].Value.Text != catalog.TripRoundTrip {
		return nil
	}
	return validators.Required(v)
}
