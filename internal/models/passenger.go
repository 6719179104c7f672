package models

// PassengerRecord is the plain value of one passenger row.
type PassengerRecord struct {
	FullName         string `json:"fullName"`
	Age              any    `json:"age"`
	RelationToHolder string `json:"relation"`
}
