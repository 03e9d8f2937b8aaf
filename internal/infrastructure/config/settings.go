package config

// Settings is the root of settings.toml: process-level knobs that are
// not game data (display, logging, stage selection).
type Settings struct {
	Display DisplaySettings `toml:"display"`
	Logging LoggingSettings `toml:"logging"`
	Game    GameSettings    `toml:"game"`
}

// DisplaySettings configures the window and frame pacing.
type DisplaySettings struct {
	ScreenWidth  int `toml:"screen_width"`
	ScreenHeight int `toml:"screen_height"`
	Scale        int `toml:"scale"`
	Framerate    int `toml:"framerate"`
}

// LoggingSettings configures the zap logger.
type LoggingSettings struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// GameSettings selects the stage and tunes simulation services.
type GameSettings struct {
	Stage      string `toml:"stage"`
	Seed       int64  `toml:"seed"` // 0 = time-based
	PathBudget int    `toml:"path_budget"`
}
