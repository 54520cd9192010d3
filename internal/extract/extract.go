// Package extract derives the views the booking script needs from a parsed
// reservation: start date, unique cabins and passengers.
//
// Only passengerGroups[0] and its sailings[0] are read. Reservations with
// several groups or sailings are not aggregated.
package extract

import (
	"errors"
	"fmt"
	"time"

	"github.com/nbenliogludev/seaware-booking-agent/internal/reservation"
)

// UnknownCabinType is used when a cabin carries no passenger details.
const UnknownCabinType = "Unknown"

// ErrStructuralIndex matches every *StructuralIndexError via errors.Is.
var ErrStructuralIndex = errors.New("reservation is missing a required entry")

// StructuralIndexError reports an empty sequence the extraction relies on.
type StructuralIndexError struct {
	Path string
}

func (e *StructuralIndexError) Error() string {
	return fmt.Sprintf("%s: %s is empty", ErrStructuralIndex, e.Path)
}

func (e *StructuralIndexError) Is(target error) bool {
	return target == ErrStructuralIndex
}

type CabinInformation struct {
	CabinNumber   string `json:"cabin_number"`
	CabinType     string `json:"cabin_type"`
	CabinCategory string `json:"cabin_category"`
}

type PassengerInformation struct {
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
}

// StartDate returns the reservation start date-time.
func StartDate(res *reservation.Reservation) time.Time {
	return res.StartDateTime.Time
}

// Cabins returns one entry per unique (category, cabin number) of the first
// sailing, in first-seen order.
func Cabins(res *reservation.Reservation) ([]CabinInformation, error) {
	sailing, err := firstSailing(res)
	if err != nil {
		return nil, err
	}

	unique := DedupeCabins(sailing.Cabins)
	out := make([]CabinInformation, 0, len(unique))
	for _, c := range unique {
		cabinType := UnknownCabinType
		if len(c.PassengerDetails) > 0 {
			cabinType = c.PassengerDetails[0].SeawareStageType
		}
		out = append(out, CabinInformation{
			CabinNumber:   c.CabinNumber,
			CabinType:     cabinType,
			CabinCategory: c.Category,
		})
	}
	return out, nil
}

// Passengers returns every passenger of the first group, in source order.
func Passengers(res *reservation.Reservation) ([]PassengerInformation, error) {
	group, err := firstGroup(res)
	if err != nil {
		return nil, err
	}

	out := make([]PassengerInformation, 0, len(group.Passengers))
	for _, p := range group.Passengers {
		out = append(out, PassengerInformation{
			PassengerName:  p.Name,
			PassengerEmail: p.Email,
		})
	}
	return out, nil
}

func firstGroup(res *reservation.Reservation) (*reservation.PassengerGroup, error) {
	if res == nil || len(res.PassengerGroups) == 0 {
		return nil, &StructuralIndexError{Path: "passengerGroups"}
	}
	return &res.PassengerGroups[0], nil
}

func firstSailing(res *reservation.Reservation) (*reservation.Sailing, error) {
	group, err := firstGroup(res)
	if err != nil {
		return nil, err
	}
	if len(group.Sailings) == 0 {
		return nil, &StructuralIndexError{Path: "passengerGroups.0.sailings"}
	}
	return &group.Sailings[0], nil
}
