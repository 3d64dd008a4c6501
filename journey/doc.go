// Package journey provides pure helpers over parsed itineraries: leg
// selection, transfer counting, fare lookup and the mapping between the trip
// planner's product taxonomy and the realtime feed's per-mode endpoints.
package journey
