package recurrence

import (
	"io"
	"log/slog"
	"time"
)

// DecoderConfig holds the knobs of a Decoder.
type DecoderConfig struct {
	// Location is the zone for timestamps without a trailing Z.
	Location *time.Location
	// StrictFrequency turns an unrecognized FREQ into ErrUnknownFrequency
	// instead of the YEARLY fallback.
	StrictFrequency bool
	Logger          *slog.Logger
}

// DefaultDecoderConfig is the lenient configuration used by Deserialize.
var DefaultDecoderConfig = DecoderConfig{
	Location:        time.Local,
	StrictFrequency: false,
}

// Option configures a Decoder.
type Option func(*DecoderConfig)

// WithLogger sets the logger that receives leniency decisions at Debug.
func WithLogger(logger *slog.Logger) Option {
	return func(c *DecoderConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithLocation sets the zone for local (non-Z) timestamps.
func WithLocation(loc *time.Location) Option {
	return func(c *DecoderConfig) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithStrictFrequency rejects unknown FREQ values.
func WithStrictFrequency() Option {
	return func(c *DecoderConfig) {
		c.StrictFrequency = true
	}
}

func newDecoderConfig(opts []Option) DecoderConfig {
	cfg := DefaultDecoderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}
