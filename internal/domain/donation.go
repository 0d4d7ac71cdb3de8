package domain

import "time"

type DonationStatus string

const (
	DonationOpen      DonationStatus = "open"
	DonationMatched   DonationStatus = "matched"
	DonationPicked    DonationStatus = "picked"
	DonationDelivered DonationStatus = "delivered"
	DonationCancelled DonationStatus = "cancelled"
)

// Represents a surplus-food offer posted by a donor.
// QuantityMeals is expected to be >= 1. ReadyBy/ExpireBy are carried for
// callers but are not consulted by scoring.
type Donation struct {
	DonationID    int
	DonorEmail    string
	Title         string
	Description   string
	IsVeg         bool
	QuantityMeals int
	ReadyBy       time.Time
	ExpireBy      time.Time
	Address       string
	Pincode       string
	Location      GeoPoint
	Status        DonationStatus
	CreatedAt     time.Time
}
