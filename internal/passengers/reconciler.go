package passengers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/validators"
)

const (
	FieldFullName = "fullName"
	FieldAge      = "age"
	FieldRelation = "relation"
)

// FieldNames lists passenger fields in display order.
var FieldNames = []string{FieldFullName, FieldAge, FieldRelation}

type fieldSpec struct {
	kind  models.ValueKind
	rules []validators.Func
}

// Passenger is one row of the collection. Rows are created with empty values
// and dropped entirely on removal.
type Passenger struct {
	ID     string
	fields map[string]*models.FieldState
	specs  map[string]fieldSpec
}

// Collection keeps passenger rows in lock-step with a requested count.
type Collection struct {
	rows  []*Passenger
	specs map[string]fieldSpec
	newID func() string
}

// NewCollection returns an empty collection whose rows accept the given relations.
func NewCollection(relations []string) *Collection {
	return &Collection{
		specs: map[string]fieldSpec{
			FieldFullName: {
				kind: models.KindText,
				rules: []validators.Func{
					validators.Required,
					validators.MinLength(validators.NameMinLength),
					validators.Pattern(validators.NameRegex),
				},
			},
			FieldAge: {
				kind:  models.KindInt,
				rules: []validators.Func{validators.Required, validators.WellFormed, validators.Min(1)},
			},
			FieldRelation: {
				kind:  models.KindEnum,
				rules: []validators.Func{validators.Required, validators.OneOf(relations)},
			},
		},
		newID: uuid.NewString,
	}
}

func (c *Collection) Len() int { return len(c.rows) }

// Rows returns the rows in order. The slice is a copy; the rows are not.
func (c *Collection) Rows() []*Passenger {
	out := make([]*Passenger, len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *Collection) At(index int) (*Passenger, error) {
	if index < 0 || index >= len(c.rows) {
		return nil, fmt.Errorf("%w: %d of %d", models.ErrPassengerIndex, index, len(c.rows))
	}
	return c.rows[index], nil
}

// Reconcile grows or shrinks the collection to n rows. New rows are appended
// with default values; surplus rows are cut from the tail. Rows below
// min(old, n) are never touched. Negative n counts as zero.
func (c *Collection) Reconcile(n int) (added, removed int) {
	if n < 0 {
		n = 0
	}
	current := len(c.rows)

	switch {
	case n > current:
		for i := current; i < n; i++ {
			c.rows = append(c.rows, c.newPassenger())
		}
		return n - current, 0
	case n < current:
		for i := n; i < current; i++ {
			c.rows[i] = nil
		}
		c.rows = c.rows[:n]
		return 0, current - n
	default:
		return 0, 0
	}
}

// Remove drops the row at index, shifting later rows down.
func (c *Collection) Remove(index int) error {
	if _, err := c.At(index); err != nil {
		return err
	}
	copy(c.rows[index:], c.rows[index+1:])
	c.rows[len(c.rows)-1] = nil
	c.rows = c.rows[:len(c.rows)-1]
	return nil
}

func (c *Collection) Valid() bool {
	for _, p := range c.rows {
		if !p.Valid() {
			return false
		}
	}
	return true
}

func (c *Collection) Records() []models.PassengerRecord {
	out := make([]models.PassengerRecord, len(c.rows))
	for i, p := range c.rows {
		out[i] = p.Record()
	}
	return out
}

func (c *Collection) newPassenger() *Passenger {
	p := &Passenger{
		ID:     c.newID(),
		fields: make(map[string]*models.FieldState, len(c.specs)),
		specs:  c.specs,
	}
	for name, spec := range c.specs {
		state := models.NewFieldState(models.EmptyValue(spec.kind))
		state.Errors = validators.Run(state.Value, spec.rules...)
		p.fields[name] = state
	}
	return p
}

// Kind returns the value kind of a passenger field.
func (p *Passenger) Kind(name string) (models.ValueKind, error) {
	spec, ok := p.specs[name]
	if !ok {
		return 0, fmt.Errorf("%w: passenger %s", models.ErrUnknownField, name)
	}
	return spec.kind, nil
}

// Set stores v and re-runs that field's rules.
func (p *Passenger) Set(name string, v models.FieldValue) error {
	spec, ok := p.specs[name]
	if !ok {
		return fmt.Errorf("%w: passenger %s", models.ErrUnknownField, name)
	}
	if v.Kind != spec.kind {
		return fmt.Errorf("%w: passenger %s wants %s, got %s", models.ErrInvalidValue, name, spec.kind, v.Kind)
	}
	state := p.fields[name]
	state.Value = v
	state.Errors = validators.Run(v, spec.rules...)
	return nil
}

// Touch marks a field as touched without validating it.
func (p *Passenger) Touch(name string) error {
	state, ok := p.fields[name]
	if !ok {
		return fmt.Errorf("%w: passenger %s", models.ErrUnknownField, name)
	}
	state.Touched = true
	return nil
}

func (p *Passenger) Field(name string) (*models.FieldState, bool) {
	state, ok := p.fields[name]
	return state, ok
}

func (p *Passenger) Valid() bool {
	for _, state := range p.fields {
		if !state.Valid() {
			return false
		}
	}
	return true
}

func (p *Passenger) Record() models.PassengerRecord {
	return models.PassengerRecord{
		FullName:         p.fields[FieldFullName].Value.Text,
		Age:              p.fields[FieldAge].Value.Interface(),
		RelationToHolder: p.fields[FieldRelation].Value.Text,
	}
}
