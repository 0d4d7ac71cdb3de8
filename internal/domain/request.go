package domain

import "time"

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestMatched   RequestStatus = "matched"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

// Represents a recipient's need for a number of meals within a time window.
// NeedMeals is expected to be >= 1; scoring floors it at 1.
type Request struct {
	RequestID      int
	RecipientEmail string
	PrefersVeg     bool
	NeedMeals      int
	Earliest       time.Time
	Latest         time.Time
	Address        string
	Pincode        string
	Location       GeoPoint
	Status         RequestStatus
	CreatedAt      time.Time
}
