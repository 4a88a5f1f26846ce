package config

// Config is the top-level configuration structure mapping to wyclef.toml.
type Config struct {
	Viewer  ViewerConfig  `toml:"viewer"`
	Load    LoadConfig    `toml:"load"`
	Logging LoggingConfig `toml:"logging"`
}

// ViewerConfig maps to the [viewer] section in wyclef.toml.
type ViewerConfig struct {
	// TickRate is the redraw/poll budget as a Go duration string, e.g. "250ms".
	TickRate string `toml:"tick_rate"`
	// PageStep is how many events Shift+Up / Shift+Down move the selection.
	PageStep int `toml:"page_step"`
}

// LoadConfig maps to the [load] section in wyclef.toml.
type LoadConfig struct {
	// SkipMalformed drops lines that are not JSON objects instead of
	// aborting the load.
	SkipMalformed bool `toml:"skip_malformed"`
}

// LoggingConfig maps to the [logging] section in wyclef.toml.
type LoggingConfig struct {
	// File receives diagnostics while the viewer owns the terminal. When
	// empty, diagnostics are discarded for the length of the session.
	File string `toml:"file"`
}
