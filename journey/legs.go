package journey

import "github.com/transportnsw/tripplanner/model"

// Direction controls which end of a leg sequence is scanned first.
type Direction int

const (
	// Forward scans legs in travel order, yielding the boarding leg.
	Forward Direction = iota
	// Reverse scans legs from the end, yielding the alighting leg.
	Reverse
)

// FirstNonWalkingLeg returns the first leg in the given direction that is an
// actual transport segment, or nil for an all-walking itinerary.
func FirstNonWalkingLeg(legs []model.JourneyLeg, dir Direction) *model.JourneyLeg {
	if dir == Reverse {
		for i := len(legs) - 1; i >= 0; i-- {
			if !legs[i].IsWalking() {
				return &legs[i]
			}
		}
		return nil
	}
	for i := range legs {
		if !legs[i].IsWalking() {
			return &legs[i]
		}
	}
	return nil
}

// CountTransfers counts the changes between transport legs. An itinerary with
// a single transport leg has 0 transfers; an all-walking itinerary reports -1,
// which callers must treat as "not a transit trip" rather than an error.
func CountTransfers(legs []model.JourneyLeg) int {
	transfers := -1
	for i := range legs {
		if !legs[i].IsWalking() {
			transfers++
		}
	}
	return transfers
}

// SelectTicket returns the first ticket for the requested rider category, or
// nil when the fare has no such ticket. Absent means "fare unavailable", not
// zero cost.
func SelectTicket(tickets []model.JourneyFareTicket, person model.FarePerson) *model.JourneyFareTicket {
	for i := range tickets {
		if tickets[i].Person == person {
			return &tickets[i]
		}
	}
	return nil
}

// FindVehicle does a linear scan of a feed snapshot for the vehicle serving
// the given realtime trip ID, returning nil when it is not present.
func FindVehicle(feed *model.RealtimeFeed, realtimeTripID string) *model.VehiclePosition {
	if feed == nil || realtimeTripID == "" {
		return nil
	}
	for i := range feed.Vehicles {
		if feed.Vehicles[i].TripID == realtimeTripID {
			return &feed.Vehicles[i]
		}
	}
	return nil
}
