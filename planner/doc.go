// Package planner ties the trip planner query to the realtime feeds: it
// retrieves upcoming journeys for a configured trip and augments each with
// the live position of the vehicle serving its first transport leg, when the
// leg has realtime coverage.
package planner
