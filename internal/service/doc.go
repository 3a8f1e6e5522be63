// Package service holds the application layer between the HTTP API and the
// game engine.
//
// GameService owns every open game session. It resolves world names through a
// pool.Source, builds sessions with the configured engine timings, looks them
// up by id for each player action, and closes them when they end or go idle.
// World generation is delegated to a WorldGenerator whose results become
// playable by name.
//
// Errors from the engine (click rejections, advancing an unwon unit) and from
// the content pool are returned as they are; the service adds ErrSessionNotFound
// and ErrTooManySessions and wraps anything unexpected in GameServiceError.
package service
