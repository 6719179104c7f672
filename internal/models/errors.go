package models

// ErrorKind identifies a user-correctable input error.
type ErrorKind string

const (
	ErrorRequired             ErrorKind = "required"
	ErrorRequiredTrue         ErrorKind = "requiredTrue"
	ErrorEmail                ErrorKind = "email"
	ErrorInvalidNationalID    ErrorKind = "invalidNationalId"
	ErrorInvalidAge           ErrorKind = "invalidAge"
	ErrorInvalidDepartureDate ErrorKind = "invalidDepartureDate"
	ErrorInvalidReturnDate    ErrorKind = "invalidReturnDate"
	ErrorMin                  ErrorKind = "min"
	ErrorMax                  ErrorKind = "max"
	ErrorMinLength            ErrorKind = "minLength"
	ErrorMaxLength            ErrorKind = "maxLength"
	ErrorPattern              ErrorKind = "pattern"
)

// ErrorPriority is the order in which a field's errors are reported.
// Only the first present kind is shown to the user.
var ErrorPriority = []ErrorKind{
	ErrorRequired,
	ErrorRequiredTrue,
	ErrorEmail,
	ErrorInvalidNationalID,
	ErrorInvalidAge,
	ErrorInvalidDepartureDate,
	ErrorInvalidReturnDate,
	ErrorMin,
	ErrorMax,
	ErrorMinLength,
	ErrorMaxLength,
	ErrorPattern,
}

// ErrorParams is the structured payload carried by bound and shape errors.
type ErrorParams struct {
	Bound   int    `json:"bound,omitempty"`
	Actual  int    `json:"actual,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

type ErrorEntry struct {
	Kind    ErrorKind   `json:"kind"`
	Message string      `json:"message,omitempty"`
	Params  ErrorParams `json:"params,omitempty"`
}

// ErrorSet holds at most one entry per kind, in insertion order.
type ErrorSet []ErrorEntry

func (s ErrorSet) Len() int { return len(s) }

func (s ErrorSet) Has(kind ErrorKind) bool {
	_, ok := s.Get(kind)
	return ok
}

func (s ErrorSet) Get(kind ErrorKind) (ErrorEntry, bool) {
	for _, e := range s {
		if e.Kind == kind {
			return e, true
		}
	}
	return ErrorEntry{}, false
}

// Put adds e, replacing any entry of the same kind in place.
func (s *ErrorSet) Put(e ErrorEntry) {
	for i := range *s {
		if (*s)[i].Kind == e.Kind {
			(*s)[i] = e
			return
		}
	}
	*s = append(*s, e)
}

// Remove deletes the entry of the given kind and leaves every other entry untouched.
func (s *ErrorSet) Remove(kind ErrorKind) bool {
	for i := range *s {
		if (*s)[i].Kind == kind {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

// First returns the highest-priority entry in the set.
func (s ErrorSet) First() (ErrorEntry, bool) {
	for _, kind := range ErrorPriority {
		if e, ok := s.Get(kind); ok {
			return e, true
		}
	}
	return ErrorEntry{}, false
}

func (s ErrorSet) Clone() ErrorSet {
	if s == nil {
		return nil
	}
	out := make(ErrorSet, len(s))
	copy(out, s)
	return out
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrUnknownField       ValidationError = "unknown field"
	ErrInvalidValue       ValidationError = "value has the wrong type for field"
	ErrPassengerIndex     ValidationError = "passenger index out of range"
	ErrFormInvalid        ValidationError = "form is not valid"
	ErrSessionNotFound    ValidationError = "form session not found"
	ErrSubmissionNotFound ValidationError = "submission not found"
	ErrEmptyCatalog       ValidationError = "catalog has no destinations"
)
