package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbenliogludev/seaware-booking-agent/internal/reservation"
)

func parseFixture(t *testing.T, name string) *reservation.Reservation {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "reservation", "testdata", name))
	require.NoError(t, err)
	res, err := reservation.Parse(data)
	require.NoError(t, err)
	return res
}

func TestStartDate(t *testing.T) {
	res := parseFixture(t, "synthetic_data.json")

	got := StartDate(res)

	assert.Equal(t, time.Date(2028, 3, 18, 0, 0, 0, 0, time.UTC), got)
}

func TestCabins_SingleCabin(t *testing.T) {
	res := parseFixture(t, "single_cabin.json")

	cabins, err := Cabins(res)

	require.NoError(t, err)
	assert.Equal(t, []CabinInformation{
		{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"},
	}, cabins)
}

func TestCabins_ExactDuplicatesCollapse(t *testing.T) {
	res := parseFixture(t, "synthetic_data.json")
	require.Len(t, res.PassengerGroups[0].Sailings[0].Cabins, 2)

	cabins, err := Cabins(res)

	require.NoError(t, err)
	assert.Equal(t, []CabinInformation{
		{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"},
	}, cabins)
}

func TestCabins_TwoDistinctCabinsKeepOrder(t *testing.T) {
	res := parseFixture(t, "two_cabins.json")

	cabins, err := Cabins(res)

	require.NoError(t, err)
	assert.Equal(t, []CabinInformation{
		{CabinNumber: "336", CabinType: "Outside Cabin", CabinCategory: "N2"},
		{CabinNumber: "528", CabinType: "Suite", CabinCategory: "Q2"},
	}, cabins)
}

func TestCabins_NoPassengerDetailsDefaultsToUnknown(t *testing.T) {
	res := withCabins(reservation.Cabin{Category: "A1", CabinNumber: "7"})

	cabins, err := Cabins(res)

	require.NoError(t, err)
	require.Len(t, cabins, 1)
	assert.Equal(t, UnknownCabinType, cabins[0].CabinType)
}

func TestCabins_EmptyCabinListIsNotAnError(t *testing.T) {
	res := withCabins()

	cabins, err := Cabins(res)

	require.NoError(t, err)
	assert.Empty(t, cabins)
}

func TestPassengers(t *testing.T) {
	res := parseFixture(t, "synthetic_data.json")

	passengers, err := Passengers(res)

	require.NoError(t, err)
	assert.Equal(t, []PassengerInformation{
		{PassengerName: "FREDI KRUGER", PassengerEmail: "test@test.com"},
		{PassengerName: "TEST JEAN PIERRE LAFFONT", PassengerEmail: "test.fr@icloud.com"},
	}, passengers)
}

func TestPassengers_NotDeduplicated(t *testing.T) {
	p := reservation.Passenger{Name: "A", Email: "a@example.com"}
	res := &reservation.Reservation{
		PassengerGroups: []reservation.PassengerGroup{{Passengers: []reservation.Passenger{p, p}}},
	}

	passengers, err := Passengers(res)

	require.NoError(t, err)
	assert.Len(t, passengers, 2)
}

func TestStructuralIndexErrors(t *testing.T) {
	noGroups := &reservation.Reservation{}
	noSailings := &reservation.Reservation{PassengerGroups: []reservation.PassengerGroup{{}}}

	tests := []struct {
		name string
		res  *reservation.Reservation
		call func(*reservation.Reservation) error
		path string
	}{
		{"cabins without groups", noGroups, cabinsErr, "passengerGroups"},
		{"passengers without groups", noGroups, passengersErr, "passengerGroups"},
		{"cabins without sailings", noSailings, cabinsErr, "passengerGroups.0.sailings"},
		{"nil reservation", nil, cabinsErr, "passengerGroups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(tt.res)

			var serr *StructuralIndexError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.path, serr.Path)
			assert.ErrorIs(t, err, ErrStructuralIndex)
		})
	}
}

func TestPassengers_GroupWithoutSailingsIsFine(t *testing.T) {
	res := &reservation.Reservation{
		PassengerGroups: []reservation.PassengerGroup{{
			Passengers: []reservation.Passenger{{Name: "A", Email: "a@example.com"}},
		}},
	}

	passengers, err := Passengers(res)

	require.NoError(t, err)
	assert.Len(t, passengers, 1)
}

func cabinsErr(res *reservation.Reservation) error {
	_, err := Cabins(res)
	return err
}

func passengersErr(res *reservation.Reservation) error {
	_, err := Passengers(res)
	return err
}

func withCabins(cabins ...reservation.Cabin) *reservation.Reservation {
	return &reservation.Reservation{
		PassengerGroups: []reservation.PassengerGroup{{
			Sailings: []reservation.Sailing{{Cabins: cabins}},
		}},
	}
}
