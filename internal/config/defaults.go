package config

// Default values applied before the config file, environment and flags.
const (
	DefaultTickRate = "250ms"
	DefaultPageStep = 10
)

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Viewer: ViewerConfig{
			TickRate: DefaultTickRate,
			PageStep: DefaultPageStep,
		},
	}
}
