// Package form is the reservation form aggregate.
//
// A Form holds every field's value, touched flag and error set, the passenger
// rows, and the derived price and destination list. Each change is handled
// synchronously in four stages: the field's own rules, cross-field rules,
// passenger reconciliation, then derived values. A Form is not safe for
// concurrent use; callers serialise events per instance.
package form

import (
	"fmt"
	"time"

	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/crossfield"
	"github.com/dharmasatrya/tripform/internal/filter"
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/passengers"
	"github.com/dharmasatrya/tripform/internal/pricing"
	"github.com/dharmasatrya/tripform/internal/timezone"
	"github.com/dharmasatrya/tripform/internal/validators"
)

type Options struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// Location is where "today" is evaluated for date rules.
	Location *time.Location
}

type Form struct {
	catalog *catalog.Catalog
	now     validators.Clock
	loc     *time.Location

	specs      map[string]fieldSpec
	fields     map[string]*models.FieldState
	passengers *passengers.Collection
	crossRules []crossfield.Rule
	formErrors []models.ErrorKind

	price    models.Price
	search   string
	filtered filter.Result

	dispatch *dispatcher
}

// New creates a form with default values, validates it, and seeds one
// passenger row for the default count.
func New(cat *catalog.Catalog, opts Options) *Form {
	if cat == nil {
		cat = catalog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = timezone.GetLocationByName(timezone.DefaultName)
	}

	f := &Form{
		catalog: cat,
		now:     now,
		loc:     loc,
		crossRules: []crossfield.Rule{
			crossfield.ReturnAfterDeparture(FieldDepartureDate, FieldReturnDate),
		},
		dispatch: newDispatcher(),
	}
	f.specs = f.buildSpecs()
	f.register()
	f.initialize()
	return f
}

func (f *Form) register() {
	f.dispatch.OnAny(StageSelf, f.validateField)
	f.dispatch.On(FieldTripType, StageSelf, func(string) { f.validateField(FieldReturnDate) })
	f.dispatch.OnAny(StageCross, func(string) { f.runCrossRules() })
	f.dispatch.On(FieldNumberOfPeople, StageReconcile, func(string) { f.reconcilePassengers() })
	f.dispatch.On(FieldNumberOfPeople, StageDerived, func(string) { f.recalculatePrice() })
	f.dispatch.On(FieldTravelClass, StageDerived, func(string) { f.recalculatePrice() })
	f.dispatch.On(FieldSearch, StageDerived, func(string) { f.refilter() })
}

func (f *Form) initialize() {
	f.fields = make(map[string]*models.FieldState, len(FieldNames))
	for _, name := range FieldNames {
		f.fields[name] = models.NewFieldState(f.specs[name].def)
	}
	for _, name := range FieldNames {
		f.validateField(name)
	}
	f.runCrossRules()

	f.passengers = passengers.NewCollection(f.catalog.Relations())
	f.reconcilePassengers()
	f.recalculatePrice()
	f.refilter()
}

// SetFieldValue stores a raw value pushed by the UI and runs every reaction
// to that change. Unknown names and values of the wrong shape are rejected
// without changing any state.
func (f *Form) SetFieldValue(name string, raw any) error {
	if name == FieldSearch {
		var q string
		switch v := raw.(type) {
		case nil:
		case string:
			q = v
		default:
			return fmt.Errorf("%w: %s wants text, got %T", models.ErrInvalidValue, name, raw)
		}
		f.search = q
		f.dispatch.Dispatch(name)
		return nil
	}

	spec, ok := f.specs[name]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownField, name)
	}
	v, err := coerce(spec.kind, raw, f.loc)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	f.fields[name].Value = v
	f.dispatch.Dispatch(name)
	return nil
}

// SetSearchQuery updates the destination search term.
func (f *Form) SetSearchQuery(q string) {
	_ = f.SetFieldValue(FieldSearch, q)
}

// MarkTouched flags a field as touched. It does not re-validate.
func (f *Form) MarkTouched(name string) error {
	state, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownField, name)
	}
	state.Touched = true
	return nil
}

// IsInvalid reports a touched field with errors.
func (f *Form) IsInvalid(name string) bool {
	state, ok := f.fields[name]
	return ok && state.Touched && !state.Valid()
}

func (f *Form) IsTouched(name string) bool {
	state, ok := f.fields[name]
	return ok && state.Touched
}

// IsValidAndTouched reports a touched field without errors.
func (f *Form) IsValidAndTouched(name string) bool {
	state, ok := f.fields[name]
	return ok && state.Touched && state.Valid()
}

// ErrorMessage returns the message of the field's highest-priority error, or "".
func (f *Form) ErrorMessage(name string) string {
	state, ok := f.fields[name]
	if !ok {
		return ""
	}
	return FirstMessage(state.Errors)
}

// Field returns a copy of a field's state.
func (f *Form) Field(name string) (models.FieldState, bool) {
	state, ok := f.fields[name]
	if !ok {
		return models.FieldState{}, false
	}
	out := *state
	out.Errors = state.Errors.Clone()
	return out, true
}

// Valid reports whether every field, every passenger and every cross-field
// rule passes.
func (f *Form) Valid() bool {
	if len(f.formErrors) > 0 {
		return false
	}
	for _, state := range f.fields {
		if !state.Valid() {
			return false
		}
	}
	return f.passengers.Valid()
}

// FormErrors returns the errors raised by cross-field rules for the form as a whole.
func (f *Form) FormErrors() []models.ErrorKind {
	out := make([]models.ErrorKind, len(f.formErrors))
	copy(out, f.formErrors)
	return out
}

// Submit returns the snapshot when the whole form is valid. The form performs
// no I/O; handing the snapshot on is the caller's job.
func (f *Form) Submit() (models.Snapshot, error) {
	if !f.Valid() {
		return models.Snapshot{}, models.ErrFormInvalid
	}
	return f.Snapshot(), nil
}

// Reset restores default values, drops touched flags, re-validates from the
// defaults and brings the passenger rows back to one default row. The
// search term is kept.
func (f *Form) Reset() {
	// Defaults are validated like any other value, so an empty required
	// field carries its error again. Touched flags are cleared, so nothing
	// is shown until the user interacts.
	f.initialize()
}

func (f *Form) Snapshot() models.Snapshot {
	values := make(map[string]any, len(FieldNames))
	for _, name := range FieldNames {
		values[name] = f.fields[name].Value.Interface()
	}
	return models.Snapshot{
		Fields:     values,
		Passengers: f.passengers.Records(),
		TotalPrice: f.price,
	}
}

func (f *Form) TotalPrice() models.Price { return f.price }

func (f *Form) SearchQuery() string { return f.search }

func (f *Form) FilteredDestinations() []string {
	out := make([]string, len(f.filtered.Destinations))
	copy(out, f.filtered.Destinations)
	return out
}

func (f *Form) NoResults() bool { return f.filtered.NoResults }

// EmailExists reports whether address is already registered in the catalog.
func (f *Form) EmailExists(address string) bool {
	return f.catalog.EmailExists(address)
}

func (f *Form) validateField(name string) {
	state, ok := f.fields[name]
	if !ok {
		return
	}
	state.Errors = validators.Run(state.Value, f.specs[name].rules...)
}

func (f *Form) runCrossRules() {
	values := make(map[string]models.FieldValue, len(f.fields))
	for name, state := range f.fields {
		values[name] = state.Value
	}

	f.formErrors = f.formErrors[:0]
	for _, rule := range f.crossRules {
		res := rule(values)
		crossfield.Apply(f.fields, res.Directives)
		if res.FormError != nil {
			f.formErrors = append(f.formErrors, *res.FormError)
		}
	}
}

func (f *Form) reconcilePassengers() {
	f.passengers.Reconcile(f.peopleCount())
}

// peopleCount is the row count the passenger collection should have. An
// unset count means no rows. Counts above MaxPeople still get their rows,
// up to MaxRows.
func (f *Form) peopleCount() int {
	v := f.fields[FieldNumberOfPeople].Value
	if v.Kind != models.KindInt || !v.Set || v.Int < 0 {
		return 0
	}
	if v.Int > MaxRows {
		return MaxRows
	}
	return v.Int
}

func (f *Form) recalculatePrice() {
	f.price = pricing.Calculate(
		f.catalog,
		f.fields[FieldTravelClass].Value,
		f.fields[FieldNumberOfPeople].Value,
	)
}

func (f *Form) refilter() {
	f.filtered = filter.Apply(f.catalog.Destinations(), f.search)
}
