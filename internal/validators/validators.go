// Package validators holds the per-field rules of the reservation form.
//
// Every rule is a Func: it inspects one value and returns nil when the value
// passes or an entry describing why it does not. Content rules let empty
// values through; presence is checked separately by Required and RequiredTrue
// so that both concerns can be reported independently.
package validators

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dharmasatrya/tripform/internal/models"
)

type Func func(models.FieldValue) *models.ErrorEntry

var (
	NameRegex  = regexp.MustCompile(`^[a-zA-ZàáâäãåąčćęèéêëėįìíîïłńòóôöõøùúûüųūÿýżźñçčšžÀÁÂÄÃÅĄĆČĖĘÈÉÊËÌÍÎÏĮŁŃÒÓÔÖÕØÙÚÛÜŲŪŸÝŻŹÑßÇŒÆČŠŽ∂ð\s]+$`)
	PhoneRegex = regexp.MustCompile(`^[679]\d{8}$`)
)

// NameMinLength is the shortest accepted holder or passenger name.
const NameMinLength = 3

// Run applies every rule to v and collects the failures. Rules do not bail:
// a value can be reported as too short and badly shaped at the same time.
func Run(v models.FieldValue, rules ...Func) models.ErrorSet {
	var errs models.ErrorSet
	for _, rule := range rules {
		if e := rule(v); e != nil {
			errs.Put(*e)
		}
	}
	return errs
}

func Required(v models.FieldValue) *models.ErrorEntry {
	if v.IsEmpty() {
		return &models.ErrorEntry{Kind: models.ErrorRequired}
	}
	return nil
}

// RequiredTrue fails unless v is a boolean set to true.
func RequiredTrue(v models.FieldValue) *models.ErrorEntry {
	if v.Kind != models.KindBool || !v.Bool {
		return &models.ErrorEntry{Kind: models.ErrorRequiredTrue}
	}
	return nil
}

func MinLength(n int) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.IsEmpty() {
			return nil
		}
		if l := utf8.RuneCountInString(v.Text); l < n {
			return &models.ErrorEntry{
				Kind:   models.ErrorMinLength,
				Params: models.ErrorParams{Bound: n, Actual: l},
			}
		}
		return nil
	}
}

func MaxLength(n int) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.IsEmpty() {
			return nil
		}
		if l := utf8.RuneCountInString(v.Text); l > n {
			return &models.ErrorEntry{
				Kind:   models.ErrorMaxLength,
				Params: models.ErrorParams{Bound: n, Actual: l},
			}
		}
		return nil
	}
}

func Pattern(re *regexp.Regexp) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.IsEmpty() {
			return nil
		}
		if !re.MatchString(v.Text) {
			return &models.ErrorEntry{
				Kind:   models.ErrorPattern,
				Params: models.ErrorParams{Pattern: re.String()},
			}
		}
		return nil
	}
}

// Min checks an integer lower bound. Unparsed input is left to WellFormed.
func Min(n int) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.Kind != models.KindInt || !v.Set {
			return nil
		}
		if v.Int < n {
			return &models.ErrorEntry{
				Kind:   models.ErrorMin,
				Params: models.ErrorParams{Bound: n, Actual: v.Int},
			}
		}
		return nil
	}
}

func Max(n int) Func {
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.Kind != models.KindInt || !v.Set {
			return nil
		}
		if v.Int > n {
			return &models.ErrorEntry{
				Kind:   models.ErrorMax,
				Params: models.ErrorParams{Bound: n, Actual: v.Int},
			}
		}
		return nil
	}
}

// BoundedCount accepts integers in [lo, hi].
func BoundedCount(lo, hi int) Func {
	lower, upper := Min(lo), Max(hi)
	return func(v models.FieldValue) *models.ErrorEntry {
		if e := lower(v); e != nil {
			return e
		}
		return upper(v)
	}
}

// Name accepts letters (extended Latin included) and spaces, at least three characters long.
func Name(v models.FieldValue) *models.ErrorEntry {
	if e := MinLength(NameMinLength)(v); e != nil {
		return e
	}
	return Pattern(NameRegex)(v)
}

var Phone = Pattern(PhoneRegex)

// Email accepts a bare address of the form local@domain where domain has a dot.
func Email(v models.FieldValue) *models.ErrorEntry {
	if v.IsEmpty() {
		return nil
	}
	if !isEmail(strings.TrimSpace(v.Text)) {
		return &models.ErrorEntry{Kind: models.ErrorEmail}
	}
	return nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && !strings.HasSuffix(domain, ".")
}

// OneOf checks enumeration membership. Failures are reported as pattern errors.
func OneOf(options []string) Func {
	allowed := make(map[string]struct{}, len(options))
	for _, o := range options {
		allowed[o] = struct{}{}
	}
	pattern := strings.Join(options, "|")
	return func(v models.FieldValue) *models.ErrorEntry {
		if v.IsEmpty() {
			return nil
		}
		if _, ok := allowed[v.Text]; !ok {
			return &models.ErrorEntry{
				Kind:   models.ErrorPattern,
				Params: models.ErrorParams{Pattern: pattern},
			}
		}
		return nil
	}
}

// WellFormed flags raw input that could not be read as the field's kind.
func WellFormed(v models.FieldValue) *models.ErrorEntry {
	if v.Malformed() {
		return &models.ErrorEntry{
			Kind:   models.ErrorPattern,
			Params: models.ErrorParams{Pattern: v.Kind.String()},
		}
	}
	return nil
}
