package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title      string `toml:"title"`
	Header     string `toml:"header"`
	SelectedBG string `toml:"selected_bg"`
	SelectedFG string `toml:"selected_fg"`
	Ready      string `toml:"ready"`
	Starting   string `toml:"starting"`
	Failed     string `toml:"failed"`
	Dimmed     string `toml:"dimmed"`
	Help       string `toml:"help"`
	Border     string `toml:"border"`
	Error      string `toml:"error"`
}

// Poll holds settings for the readiness polling loop.
type Poll struct {
	Attempts   int `toml:"attempts"`
	IntervalMS int `toml:"interval_ms"`
}

// Interval returns the poll interval as a duration.
func (p Poll) Interval() time.Duration {
	return time.Duration(p.IntervalMS) * time.Millisecond
}

// Config is the top-level configuration.
type Config struct {
	Colors Colors `toml:"colors"`
	Poll   Poll   `toml:"poll"`
}

// Default returns a Config populated with the current hardcoded defaults.
func Default() Config {
	return Config{
		Colors: Colors{
			Title:      "#cba6f7", // Mauve
			Header:     "#89b4fa", // Blue
			SelectedBG: "#313244", // Surface 0
			SelectedFG: "#cdd6f4", // Text
			Ready:      "#a6e3a1", // Green
			Starting:   "#f9e2af", // Yellow
			Failed:     "#f38ba8", // Red
			Dimmed:     "#7f849c", // Overlay 1
			Help:       "#7f849c", // Overlay 1
			Border:     "#585b70", // Surface 2
			Error:      "#f38ba8", // Red
		},
		Poll: Poll{
			Attempts:   5,
			IntervalMS: 2000,
		},
	}
}

// Path returns the config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "farmhand", "farmhand.conf")
}

// Load reads the config file and returns a Config. Omitted fields keep
// their default values. If the file does not exist, defaults are returned
// with no error.
func Load() (Config, error) {
	cfg := Default()
	path := Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

const defaultFileContent = `# Farmhand configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).
# Defaults use the Catppuccin Mocha palette.

[colors]
# title       = "#cba6f7"  # Mauve
# header      = "#89b4fa"  # Blue
# selected_bg = "#313244"  # Surface 0
# selected_fg = "#cdd6f4"  # Text
# ready       = "#a6e3a1"  # Green
# starting    = "#f9e2af"  # Yellow
# failed      = "#f38ba8"  # Red
# dimmed      = "#7f849c"  # Overlay 1
# help        = "#7f849c"  # Overlay 1
# border      = "#585b70"  # Surface 2
# error       = "#f38ba8"  # Red

[poll]
# attempts    = 5     # snapshots taken before declaring a pane failed
# interval_ms = 2000  # delay between snapshots
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
