package journey

import "github.com/transportnsw/tripplanner/model"

// GTFS feed mode keys. Each names the per-mode vehicle-position endpoint the
// realtime feed is served under.
const (
	FeedBuses        = "buses"
	FeedFerries      = "ferries"
	FeedLightRail    = "lightrail"
	FeedSydneyTrains = "sydneytrains"
)

// gtfsModeKeys is the join between the trip planner's product taxonomy and
// the realtime feed's endpoint naming. Kept as an explicit table: only the
// four listed classes have realtime coverage, everything else (coach, taxi,
// walking, ...) has none.
var gtfsModeKeys = map[model.RouteProductClass]string{
	model.ProductBus:       FeedBuses,
	model.ProductFerry:     FeedFerries,
	model.ProductLightRail: FeedLightRail,
	model.ProductTrain:     FeedSydneyTrains,
}

// GTFSModeKey maps a product class to its realtime feed mode key. ok is
// false for classes without a realtime feed.
func GTFSModeKey(class model.RouteProductClass) (mode string, ok bool) {
	mode, ok = gtfsModeKeys[class]
	return mode, ok
}

// Icons maps each transit product class to its display icon. Classes not in
// the table (walking and private modes) fall back to Icon's default.
var icons = map[model.RouteProductClass]string{
	model.ProductTrain:     "mdi:train",
	model.ProductLightRail: "mdi:tram",
	model.ProductBus:       "mdi:bus",
	model.ProductCoach:     "mdi:bus",
	model.ProductFerry:     "mdi:ferry",
	model.ProductSchoolBus: "mdi:bus",
}

// Icon returns the display icon for a product class, with a clock fallback
// for anything without realtime transit semantics.
func Icon(class model.RouteProductClass) string {
	if icon, ok := icons[class]; ok {
		return icon
	}
	return "mdi:clock"
}
