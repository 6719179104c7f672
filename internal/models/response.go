package models

import "time"

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// FieldView is what the UI reads for one field.
type FieldView struct {
	Value           any      `json:"value"`
	Touched         bool     `json:"touched"`
	Invalid         bool     `json:"invalid"`
	ValidAndTouched bool     `json:"valid_and_touched"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	Errors          ErrorSet `json:"errors,omitempty"`
}

type PassengerView struct {
	ID     string               `json:"id"`
	Fields map[string]FieldView `json:"fields"`
}

type FormView struct {
	ID                   string               `json:"id,omitempty"`
	Valid                bool                 `json:"valid"`
	Fields               map[string]FieldView `json:"fields"`
	FormErrors           []ErrorKind          `json:"form_errors,omitempty"`
	Passengers           []PassengerView      `json:"passengers"`
	TotalPrice           Price                `json:"total_price"`
	SearchQuery          string               `json:"search_query"`
	FilteredDestinations []string             `json:"filtered_destinations"`
	NoResults            bool                 `json:"no_results"`
}

// Snapshot is the validated form content handed to the submission collaborator.
type Snapshot struct {
	Fields     map[string]any    `json:"fields"`
	Passengers []PassengerRecord `json:"passengers"`
	TotalPrice Price             `json:"total_price"`
}

type Submission struct {
	ID          string    `json:"id"`
	Snapshot    Snapshot  `json:"snapshot"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type CatalogResponse struct {
	Destinations []string           `json:"destinations"`
	Classes      []string           `json:"classes"`
	TripTypes    []string           `json:"trip_types"`
	Relations    []string           `json:"relations"`
	Prices       map[string]float64 `json:"prices"`
}

type EmailExistsResponse struct {
	Address string `json:"address"`
	Exists  bool   `json:"exists"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
