package models

// Status is the outcome of checking one pincode against the courier.
type Status string

const (
	StatusFound    Status = "Found"
	StatusNotFound Status = "NotFound"
	StatusError    Status = "Error"
)
