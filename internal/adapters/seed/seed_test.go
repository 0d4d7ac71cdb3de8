package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-match-service/internal/domain"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultFleet(t *testing.T) {
	path := writeSeed(t, `{
		"donations": [{"donation_id": 1, "donor_email": "d@example.org", "title": "Rice", "is_veg": true, "quantity_meals": 50, "lat": 15.8497, "lon": 74.4977}],
		"requests": [{"request_id": 1, "recipient_email": "r@example.org", "prefers_veg": true, "need_meals": 20, "lat": 15.857, "lon": 74.506}]
	}`)

	data, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultVehicles(), data.Vehicles)
	require.Len(t, data.Donations, 1)
	assert.Equal(t, domain.DonationOpen, data.Donations[0].Status)
	assert.Equal(t, domain.GeoPoint{Lat: 15.8497, Lon: 74.4977}, data.Donations[0].Location)
	require.Len(t, data.Requests, 1)
	assert.Equal(t, domain.RequestOpen, data.Requests[0].Status)
}

func TestLoadVehicleAvailabilityDefaultsToTrue(t *testing.T) {
	path := writeSeed(t, `{"vehicles": [
		{"vehicle_id": 5, "name": "Truck", "capacity_meals": 200},
		{"vehicle_id": 6, "name": "Cart", "capacity_meals": 10, "is_available": false}
	]}`)

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.Vehicles, 2)
	assert.True(t, data.Vehicles[0].IsAvailable)
	assert.False(t, data.Vehicles[1].IsAvailable)
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := map[string]string{
		"zero quantity":  `{"donations": [{"donation_id": 1, "quantity_meals": 0}]}`,
		"zero need":      `{"requests": [{"request_id": 1, "need_meals": 0}]}`,
		"bad vehicle id": `{"vehicles": [{"vehicle_id": 0, "name": "x"}]}`,
		"blank name":     `{"vehicles": [{"vehicle_id": 1, "name": " "}]}`,
		"not json":       `[`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeSeed(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read")
}
