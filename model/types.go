package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RouteProductClass is the trip planner's numeric transport classification.
// The set is closed: Parse rejects responses carrying any other code.
type RouteProductClass int

const (
	ProductTrain                        RouteProductClass = 1
	ProductLightRail                    RouteProductClass = 4
	ProductBus                          RouteProductClass = 5
	ProductCoach                        RouteProductClass = 7
	ProductFerry                        RouteProductClass = 9
	ProductSchoolBus                    RouteProductClass = 11
	ProductWalking                      RouteProductClass = 99
	ProductWalkingFootpath              RouteProductClass = 100
	ProductBicycle                      RouteProductClass = 101
	ProductTakeBicycleOnPublicTransport RouteProductClass = 102
	ProductKissAndRide                  RouteProductClass = 103
	ProductParkAndRide                  RouteProductClass = 104
	ProductTaxi                         RouteProductClass = 105
	ProductCar                          RouteProductClass = 106
)

var routeProductClassNames = map[RouteProductClass]string{
	ProductTrain:                        "TRAIN",
	ProductLightRail:                    "LIGHT_RAIL",
	ProductBus:                          "BUS",
	ProductCoach:                        "COACH",
	ProductFerry:                        "FERRY",
	ProductSchoolBus:                    "SCHOOL_BUS",
	ProductWalking:                      "WALKING",
	ProductWalkingFootpath:              "WALKING_FOOTPATH",
	ProductBicycle:                      "BICYCLE",
	ProductTakeBicycleOnPublicTransport: "TAKE_BICYCLE_ON_PUBLIC_TRANSPORT",
	ProductKissAndRide:                  "KISS_AND_RIDE",
	ProductParkAndRide:                  "PARK_AND_RIDE",
	ProductTaxi:                         "TAXI",
	ProductCar:                          "CAR",
}

func (c RouteProductClass) String() string {
	if name, ok := routeProductClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("RouteProductClass(%d)", int(c))
}

// IsWalking reports whether the class is one of the two pedestrian codes.
// Legs without transportation are walking legs too; see JourneyLeg.IsWalking.
func (c RouteProductClass) IsWalking() bool {
	return c == ProductWalking || c == ProductWalkingFootpath
}

func (c *RouteProductClass) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err != nil {
		return fmt.Errorf("product class: %w", err)
	}
	v := RouteProductClass(code)
	if _, ok := routeProductClassNames[v]; !ok {
		return fmt.Errorf("unknown product class %d", code)
	}
	*c = v
	return nil
}

func (c RouteProductClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// FarePerson is the rider category a fare ticket applies to.
type FarePerson string

const (
	PersonAdult   FarePerson = "ADULT"
	PersonChild   FarePerson = "CHILD"
	PersonScholar FarePerson = "SCHOLAR"
	PersonSenior  FarePerson = "SENIOR"
)

var farePersons = map[FarePerson]struct{}{
	PersonAdult:   {},
	PersonChild:   {},
	PersonScholar: {},
	PersonSenior:  {},
}

func (p *FarePerson) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fare person: %w", err)
	}
	v := FarePerson(s)
	if _, ok := farePersons[v]; !ok {
		return fmt.Errorf("unknown fare person %q", s)
	}
	*p = v
	return nil
}

// JourneyFareTicket is one priced ticket option within a journey's fare.
type JourneyFareTicket struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Comment     string          `json:"comment"`
	Person      FarePerson      `json:"person" validate:"required"`
	PriceLevel  *string         `json:"priceLevel"`
	PriceBrutto decimal.Decimal `json:"priceBrutto"`
}

// Price renders the gross price with currency precision, e.g. "4.50".
func (t JourneyFareTicket) Price() string {
	return t.PriceBrutto.StringFixed(2)
}

type JourneyFareZone struct{}

// Fare groups the ticket options for one journey.
type Fare struct {
	Tickets []JourneyFareTicket `json:"tickets" validate:"dive"`
	Zones   []JourneyFareZone   `json:"zones"`
}

// InfoTimestamps carries creation metadata on a leg info record.
type InfoTimestamps struct {
	Creation         time.Time `json:"creation"`
	LastModification time.Time `json:"lastModification"`
}

// JourneyLegStopInfo is a service information record attached to a leg.
type JourneyLegStopInfo struct {
	Timestamps *InfoTimestamps `json:"timestamps"`
	Priority   string          `json:"priority" validate:"required,oneof=veryLow low normal high veryHigh"`
	ID         string          `json:"id"`
	Version    int             `json:"version"`
	URLText    *string         `json:"urlText"`
	URL        *string         `json:"url"`
	Content    *string         `json:"content"`
	Subtitle   *string         `json:"subtitle"`
}

// JourneyLegStopProperties holds the loosely-typed stop metadata we care about.
type JourneyLegStopProperties struct {
	Occupancy string `json:"occupancy"`
}

// JourneyLegStop is the origin or destination of a single leg, with planned
// and (when the service is realtime controlled) estimated timestamps.
type JourneyLegStop struct {
	ID                     string                   `json:"id" validate:"required"`
	Name                   string                   `json:"name"`
	DisassembledName       *string                  `json:"disassembledName"`
	Type                   string                   `json:"type"`
	DepartureTimeEstimated *time.Time               `json:"departureTimeEstimated"`
	DepartureTimePlanned   *time.Time               `json:"departureTimePlanned"`
	ArrivalTimeEstimated   *time.Time               `json:"arrivalTimeEstimated"`
	ArrivalTimePlanned     *time.Time               `json:"arrivalTimePlanned"`
	Properties             JourneyLegStopProperties `json:"properties"`
}

// RouteProduct describes the transport product operating a leg.
type RouteProduct struct {
	Name   string            `json:"name"`
	Class  RouteProductClass `json:"class" validate:"required"`
	IconID int               `json:"iconId"`
}

// TripTransportationProperties carries the realtime join key. RealtimeTripID
// is empty when the service has no realtime coverage.
type TripTransportationProperties struct {
	RealtimeTripID string `json:"RealtimeTripId"`
}

// TripTransportation describes the line serving a leg.
type TripTransportation struct {
	ID               *string                      `json:"id"`
	Name             *string                      `json:"name"`
	DisassembledName *string                      `json:"disassembledName"`
	Number           *string                      `json:"number"`
	IconID           *int                         `json:"iconId"`
	Description      *string                      `json:"description"`
	Product          RouteProduct                 `json:"product" validate:"required"`
	Properties       TripTransportationProperties `json:"properties"`
}

// JourneyLeg is one uninterrupted segment of an itinerary.
type JourneyLeg struct {
	Duration             int                  `json:"duration"`
	Distance             *int                 `json:"distance"`
	IsRealtimeControlled *bool                `json:"isRealtimeControlled"`
	Origin               *JourneyLegStop      `json:"origin" validate:"required"`
	Destination          *JourneyLegStop      `json:"destination" validate:"required"`
	Transportation       *TripTransportation  `json:"transportation"`
	Infos                []JourneyLegStopInfo `json:"infos" validate:"dive"`
}

// IsWalking reports whether this leg is a pedestrian segment. A leg without
// transportation counts as walking.
func (l JourneyLeg) IsWalking() bool {
	return l.Transportation == nil || l.Transportation.Product.Class.IsWalking()
}

// Journey is one complete itinerary option.
type Journey struct {
	Rating       *int         `json:"rating"`
	IsAdditional int          `json:"isAdditional"`
	Legs         []JourneyLeg `json:"legs" validate:"required,min=1,dive"`
	Fare         Fare         `json:"fare"`
}

// TripRequestResponse is the root of a single trip query's result.
type TripRequestResponse struct {
	Version  string    `json:"version" validate:"required"`
	Journeys []Journey `json:"journeys" validate:"dive"`
}
