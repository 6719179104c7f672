package form

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/timezone"
)

// coerce turns a raw UI value into a FieldValue of the given kind. Input of
// the right shape but unreadable content (a text date that does not parse)
// is kept as a malformed value; input of the wrong shape is an error.
func coerce(kind models.ValueKind, raw any, loc *time.Location) (models.FieldValue, error) {
	if v, ok := raw.(models.FieldValue); ok {
		if v.Kind != kind {
			return models.FieldValue{}, fmt.Errorf("%w: want %s, got %s", models.ErrInvalidValue, kind, v.Kind)
		}
		return v, nil
	}
	if raw == nil {
		return models.EmptyValue(kind), nil
	}

	switch kind {
	case models.KindText, models.KindEnum:
		s, ok := scalarText(raw)
		if !ok {
			break
		}
		if kind == models.KindEnum {
			return models.EnumValue(s), nil
		}
		return models.TextValue(s), nil

	case models.KindBool:
		switch b := raw.(type) {
		case bool:
			return models.BoolValue(b), nil
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return models.BoolValue(parsed), nil
			}
		}

	case models.KindDate:
		switch d := raw.(type) {
		case time.Time:
			return models.DateValue(timezone.StartOfDay(d, loc)), nil
		case string:
			if strings.TrimSpace(d) == "" {
				return models.EmptyValue(kind), nil
			}
			t, err := timezone.ParseDate(d, loc)
			if err != nil {
				return models.MalformedValue(kind, d), nil
			}
			return models.DateValue(t), nil
		}

	case models.KindInt:
		switch n := raw.(type) {
		case int:
			return models.IntValue(n), nil
		case int64:
			if int64(int(n)) != n {
				return models.MalformedValue(kind, strconv.FormatInt(n, 10)), nil
			}
			return models.IntValue(int(n)), nil
		case float64:
			// -MinInt is exactly representable, MaxInt is not.
			if n == math.Trunc(n) && n >= math.MinInt && n < -float64(math.MinInt) {
				return models.IntValue(int(n)), nil
			}
			return models.MalformedValue(kind, strconv.FormatFloat(n, 'f', -1, 64)), nil
		case json.Number:
			return intFromString(string(n)), nil
		case string:
			return intFromString(n), nil
		}
	}

	return models.FieldValue{}, fmt.Errorf("%w: want %s, got %T", models.ErrInvalidValue, kind, raw)
}

func intFromString(s string) models.FieldValue {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return models.EmptyValue(models.KindInt)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return models.MalformedValue(models.KindInt, s)
	}
	return models.IntValue(n)
}

// scalarText accepts strings and numbers, so a phone number sent as a JSON
// number still reads as its digits.
func scalarText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return string(v), true
	default:
		return "", false
	}
}
