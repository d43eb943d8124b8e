package config

import (
	"fmt"
	"time"

	"github.com/jaypipes/envutil"
	"github.com/spf13/pflag"

	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/internal/logging"
)

const (
	defaultFormat         = "text"
	defaultLogFormat      = "text"
	defaultUser           = "admin"
	defaultTimeoutSeconds = 30
)

// Config carries the CLI settings. Every flag takes its default from a
// SEMPCFG_* environment variable.
type Config struct {
	SpecPath       string
	Selector       string
	Verbose        bool
	LogFormat      string
	Format         string
	Journal        string
	Execute        bool
	URL            string
	User           string
	Password       string
	TimeoutSeconds int
	KeepDefaults   bool
}

// EnvVar documents one environment variable and the flag it seeds.
type EnvVar struct {
	Name string
	Flag string
}

// EnvVars lists the environment variables understood by AddFlags.
var EnvVars = []EnvVar{
	{"SEMPCFG_SPEC", "--spec"},
	{"SEMPCFG_FORMAT", "--format"},
	{"SEMPCFG_LOG_FORMAT", "--log-format"},
	{"SEMPCFG_JOURNAL", "--journal"},
	{"SEMPCFG_URL", "--url"},
	{"SEMPCFG_USER", "--user"},
	{"SEMPCFG_PASSWORD", "--password"},
	{"SEMPCFG_TIMEOUT_SECONDS", "--timeout-seconds"},
	{"SEMPCFG_KEEP_DEFAULTS", "--keep-defaults"},
}

// AddFlags registers the settings on fs.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(
		&c.SpecPath,
		"spec", "s",
		envutil.WithDefault("SEMPCFG_SPEC", ""),
		"Path to the SEMP v2 config OpenAPI document (JSON or YAML).",
	)
	fs.StringVar(
		&c.Selector,
		"select",
		"",
		"JSONPath selecting the configuration root inside the document, e.g. $.config.",
	)
	fs.BoolVarP(
		&c.Verbose,
		"verbose", "v",
		false,
		"Show debug logs.",
	)
	fs.StringVar(
		&c.LogFormat,
		"log-format",
		envutil.WithDefault("SEMPCFG_LOG_FORMAT", defaultLogFormat),
		"Log format: text, json or none.",
	)
	fs.StringVarP(
		&c.Format,
		"format", "o",
		envutil.WithDefault("SEMPCFG_FORMAT", defaultFormat),
		"Command list format: text, json or table.",
	)
	fs.StringVar(
		&c.Journal,
		"journal",
		envutil.WithDefault("SEMPCFG_JOURNAL", ""),
		"SQLite file recording every generated command list.",
	)
	fs.BoolVar(
		&c.Execute,
		"execute",
		false,
		"Replay the generated commands against --url.",
	)
	fs.StringVar(
		&c.URL,
		"url",
		envutil.WithDefault("SEMPCFG_URL", ""),
		"Broker SEMP base URL, e.g. http://localhost:8080/SEMP/v2/config.",
	)
	fs.StringVarP(
		&c.User,
		"user", "u",
		envutil.WithDefault("SEMPCFG_USER", defaultUser),
		"SEMP user name.",
	)
	fs.StringVarP(
		&c.Password,
		"password", "p",
		envutil.WithDefault("SEMPCFG_PASSWORD", ""),
		"SEMP password.",
	)
	fs.IntVar(
		&c.TimeoutSeconds,
		"timeout-seconds",
		envutil.WithDefaultInt("SEMPCFG_TIMEOUT_SECONDS", defaultTimeoutSeconds),
		"Timeout of each SEMP request.",
	)
	fs.BoolVar(
		&c.KeepDefaults,
		"keep-defaults",
		envutil.WithDefaultBool("SEMPCFG_KEEP_DEFAULTS", false),
		"Keep attributes whose value equals the schema default.",
	)
}

// Validate checks values the flag parser cannot.
func (c *Config) Validate() error {
	if c.SpecPath == "" {
		return fmt.Errorf("config: --spec (or SEMPCFG_SPEC) is required")
	}
	if _, err := command.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	if c.Execute && c.URL == "" {
		return fmt.Errorf("config: --execute needs --url (or SEMPCFG_URL)")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: --timeout-seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout is TimeoutSeconds as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Value returns the current value of the setting behind flag, masking the
// password.
func (c *Config) Value(flag string) string {
	switch flag {
	case "--spec":
		return c.SpecPath
	case "--format":
		return c.Format
	case "--log-format":
		return c.LogFormat
	case "--journal":
		return c.Journal
	case "--url":
		return c.URL
	case "--user":
		return c.User
	case "--password":
		if c.Password == "" {
			return ""
		}
		return "********"
	case "--timeout-seconds":
		return fmt.Sprint(c.TimeoutSeconds)
	case "--keep-defaults":
		return fmt.Sprint(c.KeepDefaults)
	default:
		return ""
	}
}
