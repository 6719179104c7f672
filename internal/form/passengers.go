package form

import (
	"fmt"

	"github.com/dharmasatrya/tripform/internal/passengers"
)

// PassengerCount is the current number of passenger rows.
func (f *Form) PassengerCount() int { return f.passengers.Len() }

// Passengers returns the rows in order.
func (f *Form) Passengers() []*passengers.Passenger { return f.passengers.Rows() }

// SetPassengerField stores a raw value on one passenger row and re-validates
// that field.
func (f *Form) SetPassengerField(index int, name string, raw any) error {
	p, err := f.passengers.At(index)
	if err != nil {
		return err
	}
	kind, err := p.Kind(name)
	if err != nil {
		return err
	}
	v, err := coerce(kind, raw, f.loc)
	if err != nil {
		return fmt.Errorf("passenger %d %s: %w", index, name, err)
	}
	return p.Set(name, v)
}

func (f *Form) MarkPassengerTouched(index int, name string) error {
	p, err := f.passengers.At(index)
	if err != nil {
		return err
	}
	return p.Touch(name)
}

// RemovePassenger drops one row and lowers the people count to match, which
// also re-prices the trip.
func (f *Form) RemovePassenger(index int) error {
	if err := f.passengers.Remove(index); err != nil {
		return err
	}
	return f.SetFieldValue(FieldNumberOfPeople, f.passengers.Len())
}
