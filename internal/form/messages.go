package form

import (
	"fmt"

	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/validators"
)

const (
	MsgRequired     = "This field is required"
	MsgRequiredTrue = "You must accept the terms and conditions"
	MsgEmail        = "Invalid email format"
	MsgPattern      = "Invalid format"
	MsgFallback     = "Validation error"
)

// Message renders an error entry for display. Domain rules carry their own
// text; the generic kinds are rendered from their parameters.
func Message(e models.ErrorEntry) string {
	switch e.Kind {
	case models.ErrorRequired:
		return MsgRequired
	case models.ErrorRequiredTrue:
		return MsgRequiredTrue
	case models.ErrorEmail:
		return MsgEmail
	case models.ErrorInvalidNationalID:
		return orDefault(e.Message, validators.MsgNationalIDFormat)
	case models.ErrorInvalidAge:
		return orDefault(e.Message, validators.MsgInvalidAge)
	case models.ErrorInvalidDepartureDate:
		return orDefault(e.Message, validators.MsgInvalidDepartureDate)
	case models.ErrorInvalidReturnDate:
		return orDefault(e.Message, validators.MsgInvalidReturnDate)
	case models.ErrorMin:
		return fmt.Sprintf("The minimum value is %d", e.Params.Bound)
	case models.ErrorMax:
		return fmt.Sprintf("The maximum value is %d", e.Params.Bound)
	case models.ErrorMinLength:
		return fmt.Sprintf("Minimum length is %d characters", e.Params.Bound)
	case models.ErrorMaxLength:
		return fmt.Sprintf("Maximum length is %d characters", e.Params.Bound)
	case models.ErrorPattern:
		return MsgPattern
	}
	return MsgFallback
}

// FirstMessage returns the message of the highest-priority error, or "".
func FirstMessage(errs models.ErrorSet) string {
	e, ok := errs.First()
	if !ok {
		return ""
	}
	return Message(e)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
