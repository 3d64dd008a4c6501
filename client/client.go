package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transportnsw/tripplanner/model"
)

const (
	defaultTripURL       = "https://api.transport.nsw.gov.au/v1/tp/trip"
	defaultVehiclePosURL = "https://api.transport.nsw.gov.au/v1/gtfs/vehiclepos"

	apiVersion = "10.2.1.42"
)

// TransportMode is a mode-of-transport filter value for trip queries.
type TransportMode string

const (
	ModeTrain     TransportMode = "train"
	ModeLightRail TransportMode = "light_rail"
	ModeBus       TransportMode = "bus"
	ModeCoach     TransportMode = "coach"
	ModeFerry     TransportMode = "ferry"
	ModeSchoolBus TransportMode = "school_bus"
)

// AllModes lists every filterable mode in exclMOT code order.
var AllModes = []TransportMode{
	ModeTrain, ModeLightRail, ModeBus, ModeCoach, ModeFerry, ModeSchoolBus,
}

// exclMOTParams is the fixed mode -> exclusion parameter table. The upstream
// API only understands exclusions; inclusion filters are translated to their
// complement over this table.
var exclMOTParams = map[TransportMode]string{
	ModeTrain:     "exclMOT_1",
	ModeLightRail: "exclMOT_4",
	ModeBus:       "exclMOT_5",
	ModeCoach:     "exclMOT_7",
	ModeFerry:     "exclMOT_9",
	ModeSchoolBus: "exclMOT_11",
}

// ValidMode reports whether s names a filterable transport mode.
func ValidMode(s string) bool {
	_, ok := exclMOTParams[TransportMode(s)]
	return ok
}

// TripQuery describes one trip planner request. At most one of DepartAt and
// ArriveBy may be set (neither means "depart now"); at most one of
// IncludeModes and ExcludeModes may be set.
type TripQuery struct {
	Origin       string
	Destination  string
	NumJourneys  int
	DepartAt     time.Time
	ArriveBy     time.Time
	IncludeModes []TransportMode
	ExcludeModes []TransportMode
}

// Client calls the Transport NSW Open Data API. The URL fields exist so tests
// can point the client at a local server; production callers keep the
// defaults from NewClient.
type Client struct {
	APIKey        string
	TripURL       string
	VehiclePosURL string
	HTTPClient    *http.Client

	now func() time.Time
}

// NewClient creates a client authenticated with the given Open Data API key.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:        apiKey,
		TripURL:       defaultTripURL,
		VehiclePosURL: defaultVehiclePosURL,
		HTTPClient:    &http.Client{Timeout: 30 * time.Second},
		now:           time.Now,
	}
}

// QueryTrip runs a trip planner query and parses the itinerary response.
// Journey order in the result matches the upstream response order.
func (c *Client) QueryTrip(ctx context.Context, q TripQuery) (*model.TripRequestResponse, error) {
	if !q.DepartAt.IsZero() && !q.ArriveBy.IsZero() {
		return nil, &ConfigurationError{Msg: "cannot set both DepartAt and ArriveBy"}
	}
	if q.IncludeModes != nil && q.ExcludeModes != nil {
		return nil, &ConfigurationError{Msg: "cannot set both IncludeModes and ExcludeModes"}
	}
	for _, m := range append(append([]TransportMode{}, q.IncludeModes...), q.ExcludeModes...) {
		if _, ok := exclMOTParams[m]; !ok {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("unknown transport mode %q", m)}
		}
	}

	numJourneys := q.NumJourneys
	if numJourneys < 1 {
		numJourneys = 1
	}
	depArrMacro := "dep"
	itd := q.DepartAt
	if !q.ArriveBy.IsZero() {
		depArrMacro = "arr"
		itd = q.ArriveBy
	}
	if itd.IsZero() {
		itd = c.now()
	}

	params := url.Values{}
	params.Set("outputFormat", "rapidJSON")
	params.Set("depArrMacro", depArrMacro)
	params.Set("itdDate", itd.Format("20060102"))
	params.Set("itdTime", itd.Format("1504"))
	params.Set("type_origin", "any")
	params.Set("type_destination", "any")
	params.Set("name_origin", q.Origin)
	params.Set("name_destination", q.Destination)
	params.Set("calcNumberOfTrips", strconv.Itoa(numJourneys))
	params.Set("version", apiVersion)
	params.Set("TfNSWTR", "true")
	if len(q.IncludeModes) > 0 || q.ExcludeModes != nil {
		params.Set("excludedMeans", "checkbox")
		for _, p := range excludeMOTParams(q.IncludeModes, q.ExcludeModes) {
			params.Set(p, "1")
		}
	}

	body, err := c.get(ctx, c.TripURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return model.Parse(body)
}

// excludeMOTParams translates a mode filter into the exclusion parameters the
// API expects. Inclusion lists become the complement over the full mode set.
func excludeMOTParams(include, exclude []TransportMode) []string {
	var out []string
	if len(include) > 0 {
		included := map[TransportMode]struct{}{}
		for _, m := range include {
			included[m] = struct{}{}
		}
		for _, m := range AllModes {
			if _, ok := included[m]; !ok {
				out = append(out, exclMOTParams[m])
			}
		}
		return out
	}
	for _, m := range exclude {
		out = append(out, exclMOTParams[m])
	}
	return out
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "apikey "+c.APIKey)

	log.Debug().Str("url", requestURL).Msg("Transport NSW API request")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, URL: requestURL}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{URL: requestURL, Err: err}
	}
	return body, nil
}
