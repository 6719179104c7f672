package form

import (
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/passengers"
)

// View is the read model the UI renders from.
func (f *Form) View() models.FormView {
	fields := make(map[string]models.FieldView, len(FieldNames))
	for _, name := range FieldNames {
		fields[name] = fieldView(f.fields[name])
	}

	rows := f.passengers.Rows()
	pv := make([]models.PassengerView, len(rows))
	for i, p := range rows {
		pf := make(map[string]models.FieldView, len(passengers.FieldNames))
		for _, name := range passengers.FieldNames {
			if state, ok := p.Field(name); ok {
				pf[name] = fieldView(state)
			}
		}
		pv[i] = models.PassengerView{ID: p.ID, Fields: pf}
	}

	return models.FormView{
		Valid:                f.Valid(),
		Fields:               fields,
		FormErrors:           f.FormErrors(),
		Passengers:           pv,
		TotalPrice:           f.price,
		SearchQuery:          f.search,
		FilteredDestinations: f.FilteredDestinations(),
		NoResults:            f.filtered.NoResults,
	}
}

func fieldView(state *models.FieldState) models.FieldView {
	valid := state.Valid()
	return models.FieldView{
		Value:           state.Value.Interface(),
		Touched:         state.Touched,
		Invalid:         state.Touched && !valid,
		ValidAndTouched: state.Touched && valid,
		ErrorMessage:    FirstMessage(state.Errors),
		Errors:          state.Errors.Clone(),
	}
}
