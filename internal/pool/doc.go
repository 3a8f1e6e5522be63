// Package pool supplies worlds to the game host. A world is loaded from a
// YAML file under the configured worlds directory or generated from text on
// demand; both kinds are served through the Source interface.
package pool
