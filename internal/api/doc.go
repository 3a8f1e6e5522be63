// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between game clients and
// the GameService, translating HTTP concerns to session operations.
//
// Engine errors are mapped to status codes in errors.go: rejected clicks are
// 409 Conflict with a stable "reason" field, unknown sessions and worlds are
// 404, and a full session store is 429.
package api
