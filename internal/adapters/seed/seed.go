// Package seed reads demo donations, requests and vehicles from JSON.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"food-match-service/internal/domain"
)

type VehicleSeed struct {
	VehicleID     int     `json:"vehicle_id"`
	Name          string  `json:"name"`
	CapacityMeals int     `json:"capacity_meals"`
	BaseLat       float64 `json:"base_lat"`
	BaseLon       float64 `json:"base_lon"`
	IsAvailable   *bool   `json:"is_available"`
}

type DonationSeed struct {
	DonationID    int       `json:"donation_id"`
	DonorEmail    string    `json:"donor_email"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsVeg         bool      `json:"is_veg"`
	QuantityMeals int       `json:"quantity_meals"`
	ReadyBy       time.Time `json:"ready_by"`
	ExpireBy      time.Time `json:"expire_by"`
	Address       string    `json:"address"`
	Pincode       string    `json:"pincode"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
}

type RequestSeed struct {
	RequestID      int       `json:"request_id"`
	RecipientEmail string    `json:"recipient_email"`
	PrefersVeg     bool      `json:"prefers_veg"`
	NeedMeals      int       `json:"need_meals"`
	Earliest       time.Time `json:"earliest"`
	Latest         time.Time `json:"latest"`
	Address        string    `json:"address"`
	Pincode        string    `json:"pincode"`
	Lat            float64   `json:"lat"`
	Lon            float64   `json:"lon"`
}

type File struct {
	Vehicles  []VehicleSeed  `json:"vehicles"`
	Donations []DonationSeed `json:"donations"`
	Requests  []RequestSeed  `json:"requests"`
}

// Data holds validated seed records. Donations and requests start open.
type Data struct {
	Vehicles  []domain.Vehicle
	Donations []domain.Donation
	Requests  []domain.Request
}

// The fleet every fresh installation starts with.
func DefaultVehicles() []domain.Vehicle {
	base := domain.GeoPoint{Lat: 15.8528, Lon: 74.4987}
	return []domain.Vehicle{
		{VehicleID: 1, Name: "Van-1", CapacityMeals: 80, BaseLocation: base, IsAvailable: true},
		{VehicleID: 2, Name: "Bike-1", CapacityMeals: 30, BaseLocation: base, IsAvailable: true},
	}
}

// Load reads and validates a seed file. A file without vehicles gets the default fleet.
func Load(path string) (*Data, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var f File
	if err := json.Unmarshal(bytes, &f); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	data, err := f.Validate()
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return data, nil
}

func (f File) Validate() (*Data, error) {
	data := &Data{
		Vehicles:  make([]domain.Vehicle, 0, len(f.Vehicles)),
		Donations: make([]domain.Donation, 0, len(f.Donations)),
		Requests:  make([]domain.Request, 0, len(f.Requests)),
	}

	for i, v := range f.Vehicles {
		if v.VehicleID <= 0 {
			return nil, fmt.Errorf("vehicle at index %d: invalid vehicle_id %d", i+1, v.VehicleID)
		}
		if strings.TrimSpace(v.Name) == "" {
			return nil, fmt.Errorf("vehicle at index %d: name cannot be empty", i+1)
		}
		available := true
		if v.IsAvailable != nil {
			available = *v.IsAvailable
		}
		data.Vehicles = append(data.Vehicles, domain.Vehicle{
			VehicleID:     v.VehicleID,
			Name:          strings.TrimSpace(v.Name),
			CapacityMeals: v.CapacityMeals,
			BaseLocation:  domain.GeoPoint{Lat: v.BaseLat, Lon: v.BaseLon},
			IsAvailable:   available,
		})
	}
	if len(data.Vehicles) == 0 {
		data.Vehicles = DefaultVehicles()
	}

	for i, d := range f.Donations {
		if d.DonationID <= 0 {
			return nil, fmt.Errorf("donation at index %d: invalid donation_id %d", i+1, d.DonationID)
		}
		if d.QuantityMeals < 1 {
			return nil, fmt.Errorf("donation at index %d: quantity_meals must be >= 1", i+1)
		}
		data.Donations = append(data.Donations, domain.Donation{
			DonationID:    d.DonationID,
			DonorEmail:    strings.TrimSpace(d.DonorEmail),
			Title:         strings.TrimSpace(d.Title),
			Description:   d.Description,
			IsVeg:         d.IsVeg,
			QuantityMeals: d.QuantityMeals,
			ReadyBy:       d.ReadyBy,
			ExpireBy:      d.ExpireBy,
			Address:       d.Address,
			Pincode:       d.Pincode,
			Location:      domain.GeoPoint{Lat: d.Lat, Lon: d.Lon},
			Status:        domain.DonationOpen,
		})
	}

	for i, r := range f.Requests {
		if r.RequestID <= 0 {
			return nil, fmt.Errorf("request at index %d: invalid request_id %d", i+1, r.RequestID)
		}
		if r.NeedMeals < 1 {
			return nil, fmt.Errorf("request at index %d: need_meals must be >= 1", i+1)
		}
		data.Requests = append(data.Requests, domain.Request{
			RequestID:      r.RequestID,
			RecipientEmail: strings.TrimSpace(r.RecipientEmail),
			PrefersVeg:     r.PrefersVeg,
			NeedMeals:      r.NeedMeals,
			Earliest:       r.Earliest,
			Latest:         r.Latest,
			Address:        r.Address,
			Pincode:        r.Pincode,
			Location:       domain.GeoPoint{Lat: r.Lat, Lon: r.Lon},
			Status:         domain.RequestOpen,
		})
	}

	return data, nil
}
