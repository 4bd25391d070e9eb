package engine

// Config contains the window, loop and service settings the engine is
// built from. Zero fields fall back to the embedded defaults when the
// engine starts.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Loop   LoopConfig   `yaml:"loop"`
	Sound  SoundConfig  `yaml:"sound"`
	Save   SaveConfig   `yaml:"save"`
	Debug  bool         `yaml:"debug"`
}

// WindowConfig defines the window and canvas parameters.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // hex, e.g. "#1a1a2e"
	Fullscreen bool   `yaml:"fullscreen"`
	Resizable  bool   `yaml:"resizable"`
	// PixelPerfect keeps the logical canvas at Width x Height and lets
	// the window scale it, instead of resizing the canvas with the
	// window.
	PixelPerfect bool `yaml:"pixel_perfect"`
}

// LoopConfig defines game-loop parameters.
type LoopConfig struct {
	TPS int `yaml:"tps"`
}

// SoundConfig defines audio parameters.
type SoundConfig struct {
	SampleRate int  `yaml:"sample_rate"`
	Muted      bool `yaml:"muted"`
}

// SaveConfig defines where persisted state lives. An empty path keeps
// saves in memory for the lifetime of the process.
type SaveConfig struct {
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// withDefaults fills zero fields from the embedded default config.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Background == "" {
		c.Window.Background = def.Window.Background
	}
	if c.Loop.TPS <= 0 {
		c.Loop.TPS = def.Loop.TPS
	}
	if c.Sound.SampleRate <= 0 {
		c.Sound.SampleRate = def.Sound.SampleRate
	}
	if c.Save.Namespace == "" {
		c.Save.Namespace = def.Save.Namespace
	}
	return c
}
