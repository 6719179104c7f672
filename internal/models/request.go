package models

// FieldChangeRequest carries a raw value pushed by the UI for a form field.
type FieldChangeRequest struct {
	Name  string `param:"name" validate:"required"`
	Value any    `json:"value"`
}

type FieldTouchRequest struct {
	Name string `param:"name" validate:"required"`
}

type PassengerFieldRequest struct {
	Index int    `param:"index" validate:"gte=0"`
	Name  string `param:"name" validate:"required,oneof=fullName age relation"`
	Value any    `json:"value"`
}

type PassengerRemoveRequest struct {
	Index int `param:"index" validate:"gte=0"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"max=100"`
}

type EmailExistsRequest struct {
	Address string `query:"address" validate:"required"`
}
