// Package client implements the Transport NSW Open Data API calls: the trip
// planner query and the per-mode GTFS-Realtime vehicle-position feeds.
//
// The client does not retry and holds no state beyond its credentials; rate
// limiting of the expensive feed fetch is the feedcache package's job.
package client
