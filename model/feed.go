package model

// VehiclePosition is one vehicle entity from a realtime feed, reduced to the
// fields the correlation step needs.
type VehiclePosition struct {
	TripID    string
	VehicleID string
	Latitude  float64
	Longitude float64
	Bearing   float64
	Timestamp int64
}

// RealtimeFeed is an immutable snapshot of a per-mode vehicle-position feed,
// decoded at fetch time. Snapshots are shared read-only between concurrent
// lookups and replaced wholesale by the next fetch.
type RealtimeFeed struct {
	Timestamp int64
	Vehicles  []VehiclePosition
}
