package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "ATLAS_LOG_LEVEL"
	EnvLogTimestamp = "ATLAS_LOG_TIMESTAMP"
	EnvLogNoColor   = "ATLAS_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logger setup for one process.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Out       io.Writer
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg, os.Getenv)
		log.Logger = New(cfg)
	})
}

// New builds a console logger. The runner's own output always goes to
// stderr so it never mixes with a wrapped tool's stdout.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		writer.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(writer).Level(cfg.Level).With().Str("app", "atlas")
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

func defaultConfig(profile Profile) Config {
	cfg := Config{Out: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
		cfg.NoColor = true
	default:
		cfg.Level = zerolog.WarnLevel
		cfg.Timestamp = true
		cfg.NoColor = !isTerminal(os.Stderr)
	}
	return cfg
}

// applyEnvOverrides layers ATLAS_LOG_* over the profile defaults. Values
// that do not parse keep the profile's setting.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	cfg.Level = parseLevel(getenv(EnvLogLevel), cfg.Level)
	cfg.Timestamp = parseBool(getenv(EnvLogTimestamp), cfg.Timestamp)
	cfg.NoColor = parseBool(getenv(EnvLogNoColor), cfg.NoColor)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var levelAliases = map[string]string{
	"diagnostics": "trace",
	"warning":     "warn",
	"disable":     "disabled",
	"off":         "disabled",
	"none":        "disabled",
	"inactive":    "disabled",
}

func parseLevel(raw string, fallback zerolog.Level) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return fallback
	}
	if alias, ok := levelAliases[name]; ok {
		name = alias
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return fallback
	}
	return lvl
}

func parseBool(raw string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}
