package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-match-service/internal/domain"
)

// fakeRow feeds fixed column values through the same Scan path as *sql.Row.
type fakeRow struct {
	vals []any
	err  error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.vals) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int:
			*p = f.vals[i].(int)
		case *float64:
			*p = f.vals[i].(float64)
		case *string:
			*p = f.vals[i].(string)
		case *time.Time:
			*p = f.vals[i].(time.Time)
		case *sql.NullInt64:
			*p = f.vals[i].(sql.NullInt64)
		case *sql.NullString:
			*p = f.vals[i].(sql.NullString)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestScanMatchWithRoute(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := fakeRow{vals: []any{
		4, 1, 2, 0.976,
		`{"food":1,"qty":1,"dist_score":0.88,"freshness":1,"dist_km":1.2}`,
		sql.NullInt64{Int64: 1, Valid: true},
		sql.NullString{String: `{"strategy":"greedy-nearest-neighbor","order":[[15.8497,74.4977],[15.857,74.506]],"km":1.564}`, Valid: true},
		"assigned",
		created,
	}}

	m, err := scanMatch(row)
	require.NoError(t, err)

	assert.Equal(t, 4, m.MatchID)
	assert.Equal(t, domain.MatchAssigned, m.Status)
	assert.Equal(t, "food=1.00, qty=1.00, dist=1.2km", m.Explanation.String())
	require.NotNil(t, m.VehicleID)
	assert.Equal(t, 1, *m.VehicleID)
	require.NotNil(t, m.Route)
	assert.Equal(t, []domain.GeoPoint{{Lat: 15.8497, Lon: 74.4977}, {Lat: 15.857, Lon: 74.506}}, m.Route.VisitingOrder)
	assert.Equal(t, created, m.CreatedAt)
}

func TestScanMatchPlanned(t *testing.T) {
	row := fakeRow{vals: []any{
		1, 1, 1, 0.5, `{}`, sql.NullInt64{}, sql.NullString{}, "planned", time.Time{},
	}}

	m, err := scanMatch(row)
	require.NoError(t, err)
	assert.Nil(t, m.VehicleID)
	assert.Nil(t, m.Route)
}

func TestScanMatchCorruptRoute(t *testing.T) {
	row := fakeRow{vals: []any{
		9, 1, 1, 0.5, `{}`, sql.NullInt64{}, sql.NullString{String: "{", Valid: true}, "planned", time.Time{},
	}}

	_, err := scanMatch(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match 9")
}

func TestNullInt(t *testing.T) {
	assert.False(t, nullInt(nil).Valid)

	id := 3
	assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, nullInt(&id))
}
