// Package events provides the event types and interfaces game sessions use
// to signal their host.
//
// A session emits an Event whenever something the host has to react to
// happens: a unit is won, a level turns out to have no playable content, or
// the session advances or restarts. Hosts register EventHandlers with an
// EventEmitter and never poll the engine for these transitions.
//
// The primary components are:
// - Event: a typed, JSON-encoded notification with a unique ID
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
