// Package model defines the parsed Transport NSW trip-planner response
// structures and the normalized realtime vehicle-position snapshot.
//
// All types are immutable once parsed: Parse validates the whole response
// up front and either returns a fully-populated TripRequestResponse or a
// MalformedResponseError. There is no deferred field validation.
package model
