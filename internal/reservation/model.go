// Package reservation holds the Seaware reservation document model and the
// schema validation that guards its construction.
package reservation

import "encoding/json"

// Reservation is the root of a booking document as exported by Seaware.
type Reservation struct {
	Tour                   string             `json:"tour"`
	Status                 string             `json:"status"`
	StartDateTime          DateTime           `json:"startDateTime"`
	SecondaryBookingSource *string            `json:"secondaryBookingSource,omitempty"`
	Payments               []json.RawMessage  `json:"payments"`
	PayLater               bool               `json:"payLater"`
	PassengerGroups        []PassengerGroup   `json:"passengerGroups"`
	Notes                  *string            `json:"notes,omitempty"`
	ModifiedBy             string             `json:"modifiedBy"`
	MarketingSource        string             `json:"marketingSource"`
	Market                 string             `json:"market"`
	IsPlatinum             bool               `json:"isPlatinum"`
	Invoices               []json.RawMessage  `json:"invoices"`
	GroupBooking           json.RawMessage    `json:"groupBooking,omitempty"`
	FinancialOverview      map[string]float64 `json:"financialOverview"`
	FinalDueDate           DateTime           `json:"finalDueDate"`
	EndDateTime            DateTime           `json:"endDateTime"`
	DepositDueDate         DateTime           `json:"depositDueDate"`
	DepartureDateTime      DateTime           `json:"departureDateTime"`
	CreatedDateTime        DateTime           `json:"createdDateTime"`
	CreatedBy              string             `json:"createdBy"`
	Company                string             `json:"company"`
	CancellationReason     *string            `json:"cancellationReason,omitempty"`
	CancellationDateTime   *DateTime          `json:"cancellationDateTime,omitempty"`
	CanAutoCancel          bool               `json:"canAutoCancel"`
	Brochure               string             `json:"brochure"`
	BookingSource          string             `json:"bookingSource"`
	BookingSFID            string             `json:"bookingSFID"`
	BookingID              int64              `json:"bookingId"`
	BookingCurrency        string             `json:"bookingCurrency"`
	BookingArea            string             `json:"bookingArea"`
	Agency                 Agency             `json:"agency"`
}

// PassengerGroup is one party travelling under the reservation.
type PassengerGroup struct {
	TicketsSentByPost    bool               `json:"ticketsSentByPost"`
	TicketsSentByEmail   bool               `json:"ticketsSentByEmail"`
	SendRecordsBy        *string            `json:"sendRecordsBy,omitempty"`
	Sailings             []Sailing          `json:"sailings"`
	Promotions           []Promotion        `json:"promotions"`
	PayingCustomerID     *int64             `json:"payingCustomerId,omitempty"`
	Passengers           []Passenger        `json:"passengers"`
	PassengerGroupID     int64              `json:"passengerGroupId"`
	Packages             []json.RawMessage  `json:"packages"`
	Name                 string             `json:"name"`
	IsCancelled          bool               `json:"isCancelled"`
	Flights              []json.RawMessage  `json:"flights"`
	FinancialOverview    map[string]float64 `json:"financialOverview"`
	Cancellations        []json.RawMessage  `json:"cancellations"`
	CancellationReason   *string            `json:"cancellationReason,omitempty"`
	CancellationDateTime *DateTime          `json:"cancellationDateTime,omitempty"`
}

// Sailing is a single voyage leg.
type Sailing struct {
	TravelType                  string            `json:"travelType"`
	ToPort                      string            `json:"toPort"`
	Supplier                    *string           `json:"supplier,omitempty"`
	Status                      string            `json:"status"`
	StartDateTime               DateTime          `json:"startDateTime"`
	ShipRooms                   []json.RawMessage `json:"shipRooms"`
	ShipName                    string            `json:"shipName"`
	ShipComments                string            `json:"shipComments"`
	ShipCode                    string            `json:"shipCode"`
	SellingPrice                float64           `json:"sellingPrice"`
	SeawareReservationID        int64             `json:"seawareReservationId"`
	SeawarePackageID            int64             `json:"seawarePackageId"`
	SailingType                 *string           `json:"sailingType,omitempty"`
	SailID                      string            `json:"sailId"`
	SailCode                    string            `json:"sailCode"`
	Promotions                  []Promotion       `json:"promotions"`
	ProductTypeID               int64             `json:"productTypeId"`
	PackageCode                 string            `json:"packageCode"`
	NumberOfVehicles            int               `json:"numberOfVehicles"`
	Notes                       *string           `json:"notes,omitempty"`
	IsViaKirkenes               bool              `json:"isViaKirkenes"`
	IsInSeawareRepairQueue      bool              `json:"isInSeawareRepairQueue"`
	FromPort                    string            `json:"fromPort"`
	Excursions                  []json.RawMessage `json:"excursions"`
	EndDateTime                 DateTime          `json:"endDateTime"`
	Destination                 string            `json:"destination"`
	Description                 string            `json:"description"`
	CruiseNights                float64           `json:"cruiseNights"`
	ConfirmationNumber          string            `json:"confirmationNumber"`
	ClosedPromotion             string            `json:"closedPromotion"`
	Cabins                      []Cabin           `json:"cabins"`
	BookingStageVoyageSeawareID int64             `json:"bookingStageVoyageSeawareId"`
	BookingStageID              int64             `json:"bookingStageId"`
	AddOns                      []AddOn           `json:"addOns"`
}

// Cabin is a booked stateroom. CabinNumber is an identifier, not a number.
type Cabin struct {
	PassengerDetails []PassengerDetail `json:"passengerDetails"`
	Mask             *int64            `json:"mask,omitempty"`
	Index            *int64            `json:"index,omitempty"`
	Category         string            `json:"category"`
	CabinNumber      string            `json:"cabinNumber"`
}

type PassengerDetail struct {
	SellingPrice     *float64 `json:"sellingPrice,omitempty"`
	SeawareStageType string   `json:"seawareStageType"`
	PassengerStageID *int64   `json:"passengerStageId,omitempty"`
	PassengerID      *int64   `json:"passengerId,omitempty"`
	IsCancelled      *bool    `json:"isCancelled,omitempty"`
	Cost             *float64 `json:"cost,omitempty"`
}

type Passenger struct {
	SeawareGuestType  string    `json:"seawareGuestType"`
	PassengerID       int64     `json:"passengerId"`
	Name              string    `json:"name"`
	MedicalFormStatus string    `json:"medicalFormStatus"`
	IsLead            bool      `json:"isLead"`
	IsCancelled       bool      `json:"isCancelled"`
	Email             string    `json:"email"`
	DateOfBirth       DateTime  `json:"dateOfBirth"`
	CustomerID        int64     `json:"customerId"`
	CancellationDate  *DateTime `json:"cancellationDate,omitempty"`
}

type Promotion struct {
	PassengerStageID *int64 `json:"passengerStageId,omitempty"`
	PassengerID      *int64 `json:"passengerId,omitempty"`
	Code             string `json:"code"`
}

type AddOn struct {
	Supplier             *string           `json:"supplier,omitempty"`
	Status               string            `json:"status"`
	StartDateTime        DateTime          `json:"startDateTime"`
	SellingPrice         float64           `json:"sellingPrice"`
	SeawareReservationID int64             `json:"seawareReservationId"`
	Quantity             int               `json:"quantity"`
	PassengerDetails     []PassengerDetail `json:"passengerDetails"`
	Notes                *string           `json:"notes,omitempty"`
	Mandatory            bool              `json:"mandatory"`
	EndDateTime          DateTime          `json:"endDateTime"`
	Description          string            `json:"description"`
	ConfirmationNumber   string            `json:"confirmationNumber"`
	Code                 string            `json:"code"`
	BookingStageID       int64             `json:"bookingStageId"`
}

type Agency struct {
	Phone       string `json:"phone"`
	Name        string `json:"name"`
	InvoiceType string `json:"invoiceType"`
	Email       string `json:"email"`
	ContactID   int64  `json:"contactId"`
	AgencyID    int64  `json:"agencyId"`
}
