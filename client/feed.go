package client

import (
	"context"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/proto"

	"github.com/transportnsw/tripplanner/model"
)

// FetchRealtimeFeed downloads and decodes the vehicle-position feed for one
// mode key (buses, ferries, lightrail, sydneytrains). One call is one full
// feed download; callers should go through feedcache rather than calling
// this directly.
func (c *Client) FetchRealtimeFeed(ctx context.Context, mode string) (*model.RealtimeFeed, error) {
	requestURL := c.VehiclePosURL + "/" + mode
	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var fm gtfsrt.FeedMessage
	if err := proto.Unmarshal(body, &fm); err != nil {
		return nil, &model.MalformedResponseError{Err: err}
	}

	feed := &model.RealtimeFeed{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		feed.Timestamp = int64(*fm.Header.Timestamp)
	}
	feed.Vehicles = make([]model.VehiclePosition, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		v := e.GetVehicle()
		if v == nil || v.GetTrip() == nil || v.GetPosition() == nil {
			continue
		}
		vp := model.VehiclePosition{
			TripID:    v.GetTrip().GetTripId(),
			Latitude:  float64(v.GetPosition().GetLatitude()),
			Longitude: float64(v.GetPosition().GetLongitude()),
			Bearing:   float64(v.GetPosition().GetBearing()),
		}
		if v.Vehicle != nil {
			vp.VehicleID = v.Vehicle.GetId()
		}
		if v.Timestamp != nil {
			vp.Timestamp = int64(*v.Timestamp)
		}
		feed.Vehicles = append(feed.Vehicles, vp)
	}

	log.Debug().Str("mode", mode).Int("vehicles", len(feed.Vehicles)).Msg("Decoded vehicle position feed")
	return feed, nil
}
