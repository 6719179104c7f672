package pricing

import (
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/pkg/currency"
)

// Table is the per-person price list by travel class.
type Table interface {
	PricePerPerson(class string) float64
	Currency() string
}

func total(perPerson float64, count int) float64 {
	return perPerson * float64(count)
}

// Calculate derives the total price from the travel class and the number of
// people. Unknown classes and missing or unparsed counts price at 0. It keeps
// no state between calls.
func Calculate(table Table, class models.FieldValue, count models.FieldValue) models.Price {
	code := "EUR"
	perPerson := 0.0
	if table != nil {
		code = table.Currency()
		if !class.IsEmpty() {
			perPerson = table.PricePerPerson(class.Text)
		}
	}

	people := 0
	if count.Kind == models.KindInt && count.Set {
		people = count.Int
	}

	amount := total(perPerson, people)
	return models.Price{
		Amount:    amount,
		Currency:  code,
		Formatted: currency.Format(amount, code),
	}
}
