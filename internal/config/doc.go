// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and SCRY_-prefixed environment
// variables. It provides type-safe access to server, game timing and content
// settings while keeping configuration details separate from game logic.
package config
