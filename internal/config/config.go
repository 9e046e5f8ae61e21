package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/atomicstack/marquee/internal/app"
	"github.com/atomicstack/marquee/internal/nav"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigFile       = "MARQUEE_CONFIG"
	envDBPath           = "MARQUEE_DB"
	envSeed             = "MARQUEE_SEED"
	envWidth            = "MARQUEE_WIDTH"
	envHeight           = "MARQUEE_HEIGHT"
	envHints            = "MARQUEE_HINTS"
	envVerbose          = "MARQUEE_VERBOSE"
	envTrace            = "MARQUEE_TRACE"
	envLogFile          = "MARQUEE_LOG_FILE"
	envRefreshMS        = "MARQUEE_REFRESH_MS"
	envThrottleMS       = "MARQUEE_THROTTLE_MS"
	envSettleMS         = "MARQUEE_SETTLE_MS"
	envPointerIdleMS    = "MARQUEE_POINTER_IDLE_MS"
	envEdgeTolerance    = "MARQUEE_EDGE_TOLERANCE"
	envContainerMargin  = "MARQUEE_CONTAINER_MARGIN"
	envPageTopMargin    = "MARQUEE_PAGE_TOP_MARGIN"
	envPageBottomMargin = "MARQUEE_PAGE_BOTTOM_MARGIN"
	envAccent           = "MARQUEE_ACCENT"
)

const (
	defaultDBPath  = "marquee.db"
	defaultRefresh = 1500
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values layer as
// defaults, then the optional TOML config file, then MARQUEE_* environment
// entries, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	cfgFile, explicit := configFilePath(env, args)
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config file %s: %w", cfgFile, err)
			}
		} else if explicit {
			return Config{}, fmt.Errorf("read config file %s: %w", cfgFile, err)
		}
	}

	fs := flag.NewFlagSet("marquee", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFlag := fs.String("config", cfgFile, "path to a TOML config file")
	db := fs.String("db", envOrDefault(env, envDBPath, v.GetString("db")), "path to the catalog database")
	seed := fs.Bool("seed", envOrBool(env, envSeed, v.GetBool("seed")), "seed demo catalog data when the database is empty")
	width := fs.Int("width", envOrInt(env, envWidth, v.GetInt("width")), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, v.GetInt("height")), "desired viewport height in rows (0 uses terminal height)")
	hints := fs.Bool("hints", envOrBool(env, envHints, v.GetBool("hints")), "show the key-hint bar while navigating")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, v.GetBool("verbose")), "print success messages for actions")
	trace := fs.Bool("trace", envOrBool(env, envTrace, v.GetBool("trace")), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, v.GetString("log_file")), "path to the log file")
	refreshMS := fs.Int("refresh-ms", envOrInt(env, envRefreshMS, v.GetInt("refresh_ms")), "catalog poll interval in milliseconds")
	throttleMS := fs.Int("throttle-ms", envOrInt(env, envThrottleMS, v.GetInt("throttle_ms")), "minimum gap between navigation commands in milliseconds")
	settleMS := fs.Int("settle-ms", envOrInt(env, envSettleMS, v.GetInt("settle_ms")), "delay before navigation picks an entry focus in milliseconds")
	pointerIdleMS := fs.Int("pointer-idle-ms", envOrInt(env, envPointerIdleMS, v.GetInt("pointer_idle_ms")), "pointer quiet period before hints hide in milliseconds")
	edgeTolerance := fs.Int("edge-tolerance", envOrInt(env, envEdgeTolerance, v.GetInt("edge_tolerance")), "rows of overlap still counted as past an edge")
	containerMargin := fs.Int("container-margin", envOrInt(env, envContainerMargin, v.GetInt("container_margin")), "columns kept visible beside a revealed card")
	pageTopMargin := fs.Int("page-top-margin", envOrInt(env, envPageTopMargin, v.GetInt("page_top_margin")), "rows kept clear above a revealed card")
	pageBottomMargin := fs.Int("page-bottom-margin", envOrInt(env, envPageBottomMargin, v.GetInt("page_bottom_margin")), "rows kept clear below a revealed card")
	accent := fs.String("accent", envOrDefault(env, envAccent, v.GetString("accent")), "accent colour for the focus highlight")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	navOpts := nav.DefaultOptions()
	navOpts.Throttle = time.Duration(*throttleMS) * time.Millisecond
	navOpts.SettleDelay = time.Duration(*settleMS) * time.Millisecond
	navOpts.PointerIdle = time.Duration(*pointerIdleMS) * time.Millisecond
	navOpts.EdgeTolerance = *edgeTolerance
	navOpts.ContainerMargin = *containerMargin
	navOpts.PageTopMargin = *pageTopMargin
	navOpts.PageBottomMargin = *pageBottomMargin

	cfg := Config{
		App: app.Config{
			DBPath:    *db,
			Seed:      *seed,
			Width:     *width,
			Height:    *height,
			ShowHints: *hints,
			Verbose:   *verbose,
			Refresh:   time.Duration(*refreshMS) * time.Millisecond,
			Accent:    *accent,
			Nav:       navOpts,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"config":  *configFlag,
			"db":      *db,
			"seed":    strconv.FormatBool(*seed),
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"hints":   strconv.FormatBool(*hints),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
			"refresh": strconv.Itoa(*refreshMS),
			"accent":  *accent,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := nav.DefaultOptions()
	v.SetDefault("db", defaultDBPath)
	v.SetDefault("seed", true)
	v.SetDefault("width", 0)
	v.SetDefault("height", 0)
	v.SetDefault("hints", true)
	v.SetDefault("verbose", false)
	v.SetDefault("trace", false)
	v.SetDefault("log_file", "")
	v.SetDefault("refresh_ms", defaultRefresh)
	v.SetDefault("throttle_ms", int(def.Throttle/time.Millisecond))
	v.SetDefault("settle_ms", int(def.SettleDelay/time.Millisecond))
	v.SetDefault("pointer_idle_ms", int(def.PointerIdle/time.Millisecond))
	// The engine defaults suit pixel layouts; a cell grid needs tighter
	// tolerances and margins. Tolerance zero: terminal cells carry no
	// sub-cell layout noise, and single-row elements sitting side by side
	// must not pass the vertical beyond-edge test.
	v.SetDefault("edge_tolerance", 0)
	v.SetDefault("container_margin", 4)
	v.SetDefault("page_top_margin", 5)
	v.SetDefault("page_bottom_margin", 2)
	v.SetDefault("accent", "")
}

// configFilePath resolves the config file location: the -config flag wins,
// then MARQUEE_CONFIG, then the conventional per-user path. The boolean
// reports whether the path was asked for explicitly, in which case a missing
// file is an error rather than a silent skip.
func configFilePath(env map[string]string, args []string) (string, bool) {
	path := ""
	explicit := false
	if v, ok := env[envConfigFile]; ok && v != "" {
		path = v
		explicit = true
	}
	if path == "" {
		if base := envOrDefault(env, "XDG_CONFIG_HOME", ""); base != "" {
			path = filepath.Join(base, "marquee", "config.toml")
		} else if home := envOrDefault(env, "HOME", ""); home != "" {
			path = filepath.Join(home, ".config", "marquee", "config.toml")
		}
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		trimmed := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		switch {
		case trimmed == "config":
			if i+1 < len(args) {
				path = args[i+1]
				explicit = true
			}
		case strings.HasPrefix(trimmed, "config="):
			path = strings.TrimPrefix(trimmed, "config=")
			explicit = true
		}
	}
	return path, explicit
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.DBPath) == "" {
		return fmt.Errorf("catalog database path must not be empty")
	}
	if cfg.App.Refresh < 0 {
		return fmt.Errorf("refresh interval must be >= 0 (got %s)", cfg.App.Refresh)
	}
	n := cfg.App.Nav
	if n.Throttle < 0 || n.SettleDelay < 0 || n.PointerIdle < 0 {
		return fmt.Errorf("navigation delays must be >= 0")
	}
	if n.EdgeTolerance < 0 {
		return fmt.Errorf("edge tolerance must be >= 0 (got %d)", n.EdgeTolerance)
	}
	if n.ContainerMargin < 0 || n.PageTopMargin < 0 || n.PageBottomMargin < 0 {
		return fmt.Errorf("scroll margins must be >= 0")
	}
	return nil
}
