package client

import (
	"context"
	"net/http"
	"testing"

	gtfsrt "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/transportnsw/tripplanner/model"
)

func vehiclePositionFeed(t *testing.T) []byte {
	t.Helper()
	fm := &gtfsrt.FeedMessage{
		Header: &gtfsrt.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1767139200),
		},
		Entity: []*gtfsrt.FeedEntity{
			{
				Id: proto.String("1"),
				Vehicle: &gtfsrt.VehiclePosition{
					Trip:      &gtfsrt.TripDescriptor{TripId: proto.String("T1")},
					Vehicle:   &gtfsrt.VehicleDescriptor{Id: proto.String("bus-8123")},
					Position:  &gtfsrt.Position{Latitude: proto.Float32(-33.8), Longitude: proto.Float32(151.2), Bearing: proto.Float32(90)},
					Timestamp: proto.Uint64(1767139180),
				},
			},
			{
				// No position: dropped during normalization.
				Id: proto.String("2"),
				Vehicle: &gtfsrt.VehiclePosition{
					Trip: &gtfsrt.TripDescriptor{TripId: proto.String("T2")},
				},
			},
		},
	}
	b, err := proto.Marshal(fm)
	require.NoError(t, err)
	return b
}

func TestFetchRealtimeFeed(t *testing.T) {
	payload := vehiclePositionFeed(t)
	var requestedPath, auth string
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		auth = r.Header.Get("Authorization")
		w.Write(payload)
	}))
	defer server.Close()

	feed, err := c.FetchRealtimeFeed(context.Background(), "buses")
	require.NoError(t, err)

	assert.Equal(t, "/v1/gtfs/vehiclepos/buses", requestedPath)
	assert.Equal(t, "apikey test-key", auth)

	assert.Equal(t, int64(1767139200), feed.Timestamp)
	require.Len(t, feed.Vehicles, 1)

	v := feed.Vehicles[0]
	assert.Equal(t, "T1", v.TripID)
	assert.Equal(t, "bus-8123", v.VehicleID)
	assert.InDelta(t, -33.8, v.Latitude, 1e-5)
	assert.InDelta(t, 151.2, v.Longitude, 1e-5)
	assert.InDelta(t, 90.0, v.Bearing, 1e-5)
	assert.Equal(t, int64(1767139180), v.Timestamp)
}

func TestFetchRealtimeFeedUpstreamError(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := c.FetchRealtimeFeed(context.Background(), "ferries")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
}

func TestFetchRealtimeFeedMalformedPayload(t *testing.T) {
	c, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a protobuf feed"))
	}))
	defer server.Close()

	_, err := c.FetchRealtimeFeed(context.Background(), "sydneytrains")
	require.Error(t, err)

	var malformed *model.MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}
