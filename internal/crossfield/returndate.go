// Package crossfield holds rules that look at more than one field at once.
//
// A rule never mutates field state. It returns directives naming the field
// and error kind it owns; Apply merges them into the target field by key so
// errors placed there by other rules survive.
package crossfield

import (
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/validators"
)

// Directive asserts (Entry != nil) or clears (Entry == nil) one error kind on one field.
type Directive struct {
	Field string
	Kind  models.ErrorKind
	Entry *models.ErrorEntry
}

// Result is the outcome of one cross-field rule.
type Result struct {
	Directives []Directive
	// FormError is set when the rule fails for the form as a whole.
	FormError *models.ErrorKind
}

// Rule reads the current field values and decides what to assert or clear.
type Rule func(values map[string]models.FieldValue) Result

// ReturnAfterDeparture requires the return day to be strictly after the
// departure day. When either date is missing it neither asserts nor clears.
func ReturnAfterDeparture(departureField, returnField string) Rule {
	return func(values map[string]models.FieldValue) Result {
		dep, okDep := values[departureField]
		ret, okRet := values[returnField]
		if !okDep || !okRet || !hasDate(dep) || !hasDate(ret) {
			return Result{}
		}

		if !ret.Date.After(dep.Date) {
			kind := models.ErrorInvalidReturnDate
			return Result{
				Directives: []Directive{{
					Field: returnField,
					Kind:  kind,
					Entry: &models.ErrorEntry{Kind: kind, Message: validators.MsgInvalidReturnDate},
				}},
				FormError: &kind,
			}
		}

		return Result{
			Directives: []Directive{{Field: returnField, Kind: models.ErrorInvalidReturnDate}},
		}
	}
}

func hasDate(v models.FieldValue) bool {
	return v.Kind == models.KindDate && v.Set
}

// Apply merges directives into the field states. Unknown fields are skipped.
func Apply(fields map[string]*models.FieldState, directives []Directive) {
	for _, d := range directives {
		state, ok := fields[d.Field]
		if !ok {
			continue
		}
		if d.Entry != nil {
			state.Errors.Put(*d.Entry)
		} else {
			state.Errors.Remove(d.Kind)
		}
	}
}
