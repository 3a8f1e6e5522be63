package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Game    GameConfig    `mapstructure:"game" validate:"required"`
	Content ContentConfig `mapstructure:"content" validate:"required"`
	Events  EventsConfig  `mapstructure:"events"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeout bounds how long in-flight requests get on shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// GameConfig contains the engine timings and the default level size.
type GameConfig struct {
	// ItemsPerGame is used for worlds that do not set their own chunk size.
	ItemsPerGame    int           `mapstructure:"items_per_game" validate:"required,gte=1"`
	MismatchReveal  time.Duration `mapstructure:"mismatch_reveal" validate:"gt=0"`
	WrongReveal     time.Duration `mapstructure:"wrong_reveal" validate:"gt=0"`
	PreviewDuration time.Duration `mapstructure:"preview_duration" validate:"gt=0"`

	// MaxSessions caps concurrently open sessions.
	MaxSessions int `mapstructure:"max_sessions" validate:"gte=1"`

	// SessionIdleTimeout is how long a session may go without input before it
	// is closed.
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout" validate:"gt=0"`
}

// ContentConfig locates world files and bounds generated worlds.
type ContentConfig struct {
	WorldsDir string `mapstructure:"worlds_dir" validate:"required"`

	// MaxGeneratedWorlds caps how many worlds generated from text are kept in
	// memory.
	MaxGeneratedWorlds int `mapstructure:"max_generated_worlds" validate:"gte=1"`
}

// EventsConfig controls the per-session event history kept for clients.
type EventsConfig struct {
	HistoryLimit int `mapstructure:"history_limit" validate:"gte=0"`
}

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	// MaxAge is how long, in seconds, browsers may cache a preflight response.
	MaxAge int `mapstructure:"max_age" validate:"gte=0"`
}
