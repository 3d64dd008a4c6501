package planner

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/transportnsw/tripplanner/client"
	"github.com/transportnsw/tripplanner/journey"
	"github.com/transportnsw/tripplanner/model"
)

// TripClient runs trip planner queries. Satisfied by *client.Client.
type TripClient interface {
	QueryTrip(ctx context.Context, q client.TripQuery) (*model.TripRequestResponse, error)
}

// FeedSource provides vehicle-position snapshots per mode. Satisfied by
// *feedcache.Cache.
type FeedSource interface {
	Feed(ctx context.Context, mode string) (*model.RealtimeFeed, error)
}

// TripRequest is one configured trip to retrieve journeys for.
type TripRequest struct {
	Origin      string
	Destination string
	NumJourneys int
	Modes       []client.TransportMode
}

// JourneyRealtime pairs a journey with the live position of the vehicle
// serving its boarding leg. Vehicle is nil when the journey has no transport
// leg, the leg has no realtime trip ID, its mode has no realtime feed, or the
// feed has no matching entity. All of those are normal outcomes.
type JourneyRealtime struct {
	Journey *model.Journey
	Vehicle *model.VehiclePosition
}

// Planner is the retrieval orchestrator.
type Planner struct {
	client TripClient
	feeds  FeedSource
}

// New creates a planner over the given trip client and feed source.
func New(tripClient TripClient, feeds FeedSource) *Planner {
	return &Planner{client: tripClient, feeds: feeds}
}

// Retrieve queries upcoming journeys for the trip and correlates each with
// realtime data. The result preserves the upstream journey order. A feed
// fetch failure fails the whole retrieval; previously returned results are
// the caller's to keep.
func (p *Planner) Retrieve(ctx context.Context, trip TripRequest) ([]JourneyRealtime, error) {
	q := client.TripQuery{
		Origin:      trip.Origin,
		Destination: trip.Destination,
		NumJourneys: trip.NumJourneys,
	}
	if trip.Modes != nil {
		q.IncludeModes = trip.Modes
	}
	resp, err := p.client.QueryTrip(ctx, q)
	if err != nil {
		return nil, err
	}

	// Correlate journeys concurrently; the cache collapses lookups for the
	// same mode into one fetch. Results are written by index to keep the
	// upstream order.
	results := make([]JourneyRealtime, len(resp.Journeys))
	wp := pool.New().WithErrors().WithContext(ctx)
	for i := range resp.Journeys {
		i := i
		j := &resp.Journeys[i]
		wp.Go(func(ctx context.Context) error {
			vehicle, err := p.correlate(ctx, j)
			if err != nil {
				return err
			}
			results[i] = JourneyRealtime{Journey: j, Vehicle: vehicle}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// correlate finds the live vehicle for a journey's boarding leg, or nil when
// the leg cannot be looked up in any realtime feed.
func (p *Planner) correlate(ctx context.Context, j *model.Journey) (*model.VehiclePosition, error) {
	leg := journey.FirstNonWalkingLeg(j.Legs, journey.Forward)
	if leg == nil {
		return nil, nil
	}
	realtimeTripID := leg.Transportation.Properties.RealtimeTripID
	if realtimeTripID == "" {
		return nil, nil
	}
	mode, ok := journey.GTFSModeKey(leg.Transportation.Product.Class)
	if !ok {
		return nil, nil
	}
	feed, err := p.feeds.Feed(ctx, mode)
	if err != nil {
		return nil, err
	}
	return journey.FindVehicle(feed, realtimeTripID), nil
}
