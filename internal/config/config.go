// ABOUTME: Settings loading with global + project YAML merge and validation
// ABOUTME: Files are read-only; defaults fill whatever no layer sets

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/texdi/internal/log"
)

// Defaults for fields no settings layer sets.
const (
	DefaultBanner      = "texDi, the text editor"
	DefaultMarker      = "~"
	DefaultQuitKey     = "q"
	DefaultReadTimeout = 1
)

// Settings holds the merged configuration.
type Settings struct {
	Banner      string `yaml:"banner,omitempty"`
	Marker      string `yaml:"marker,omitempty"`
	QuitKey     string `yaml:"quit_key,omitempty"`
	ReadTimeout int    `yaml:"read_timeout,omitempty"` // deciseconds
	WASD        *bool  `yaml:"wasd,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

// Load reads and merges the global and project-local settings. When
// explicit is non-empty it is read instead of both, and must exist.
func Load(projectRoot, explicit string) (*Settings, error) {
	return LoadWithHome(projectRoot, HomeDir(), explicit)
}

// LoadWithHome is Load with the home directory supplied by the caller.
func LoadWithHome(projectRoot, home, explicit string) (*Settings, error) {
	if explicit != "" {
		s, err := LoadFile(explicit)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", explicit, err)
		}
		s.applyDefaults()
		return s, nil
	}

	global, err := LoadFile(GlobalConfigFile(home))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := LoadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := Merge(global, project)
	merged.applyDefaults()
	return merged, nil
}

// LoadFile reads Settings from a YAML file. A missing file returns empty
// Settings together with the not-exist error.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Merge overlays top onto base. Non-zero top values win, and a wasd value
// set in top wins even when false.
func Merge(base, top *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if top == nil {
		result := *base
		return &result
	}

	result := *base

	if top.Banner != "" {
		result.Banner = top.Banner
	}
	if top.Marker != "" {
		result.Marker = top.Marker
	}
	if top.QuitKey != "" {
		result.QuitKey = top.QuitKey
	}
	if top.ReadTimeout != 0 {
		result.ReadTimeout = top.ReadTimeout
	}
	if top.WASD != nil {
		v := *top.WASD
		result.WASD = &v
	}
	if top.LogFile != "" {
		result.LogFile = top.LogFile
	}
	if top.LogLevel != "" {
		result.LogLevel = top.LogLevel
	}

	return &result
}

func (s *Settings) applyDefaults() {
	if s.Banner == "" {
		s.Banner = DefaultBanner
	}
	if s.Marker == "" {
		s.Marker = DefaultMarker
	}
	if s.QuitKey == "" {
		s.QuitKey = DefaultQuitKey
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
}

// Validate reports the first invalid field.
func (s *Settings) Validate() error {
	if len(s.QuitKey) != 1 {
		return fmt.Errorf("quit_key %q: must be a single letter", s.QuitKey)
	}
	if c := strings.ToLower(s.QuitKey)[0]; c < 'a' || c > 'z' {
		return fmt.Errorf("quit_key %q: must be a letter a-z", s.QuitKey)
	}
	if s.ReadTimeout < 1 || s.ReadTimeout > 255 {
		return fmt.Errorf("read_timeout %d: must be between 1 and 255 deciseconds", s.ReadTimeout)
	}
	if s.Marker == "" {
		return errors.New("marker: must not be empty")
	}
	if strings.ContainsAny(s.Banner+s.Marker, "\r\n\x1b") {
		return errors.New("banner and marker must not contain line breaks or escapes")
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// WASDEnabled reports whether w/a/s/d move the cursor. Unset means off.
func (s *Settings) WASDEnabled() bool {
	return s.WASD != nil && *s.WASD
}

// QuitLetter returns the lowercase quit letter. Only meaningful after
// Validate succeeds.
func (s *Settings) QuitLetter() byte {
	return strings.ToLower(s.QuitKey)[0]
}
