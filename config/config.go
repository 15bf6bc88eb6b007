package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	DefaultDelay            = 15
	DefaultFailureThreshold = 3
	DefaultTimeout          = 10
)

// MaxSeconds is the largest delay or timeout that fits in a time.Duration.
const MaxSeconds = int(math.MaxInt64 / int64(time.Second))

// ErrUsage is returned when the positional arguments are wrong.
var ErrUsage = errors.New("exactly one URL argument is required")

type Config struct {
	URL              string `mapstructure:"url" json:"url"`
	Delay            int    `mapstructure:"delay" json:"delay"`
	FailureThreshold int    `mapstructure:"failure-threshold" json:"failure-threshold"`
	Timeout          int    `mapstructure:"timeout" json:"timeout"`
	LogLevel         string `mapstructure:"log-level" json:"log-level"`
	LogFormat        string `mapstructure:"log-format" json:"log-format"`
	Color            string `mapstructure:"color" json:"color"`

	target *url.URL
}

// NewFlagSet defines the command line flags. Usage is written to the flag
// set's output.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.IntP("delay", "d", DefaultDelay, "Delay between health check calls, in seconds")
	fs.IntP("failure-threshold", "f", DefaultFailureThreshold, "Failures before marking service as down")
	fs.IntP("timeout", "t", DefaultTimeout, "Request timeout for health check, in seconds")
	fs.String("log-level", LogLevelWarn, "Diagnostic log level: debug, info, warn, error")
	fs.String("log-format", LogFormatText, "Diagnostic log format: text, json")
	fs.String("color", ColorAuto, "Color status lines: auto, always, never")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Emulate a kubernetes liveness probe against a URL.\n\n")
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] <url>\n\nFlags:\n", name)
		fmt.Fprint(fs.Output(), fs.FlagUsages())
	}

	return fs
}

// Load parses args (without the program name) and returns a validated
// config. It returns pflag.ErrHelp after printing usage when help is
// requested.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	fs := NewFlagSet(name)
	fs.SetOutput(output)

	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fs.Usage()
		}
		return nil, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w, got %d", ErrUsage, fs.NArg())
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.Set("url", fs.Arg(0))

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.target = target

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL,
			validation.Required,
			is.RequestURL,
			validation.By(validateTargetURL),
		),
		validation.Field(&c.Delay,
			validation.Min(0),
			validation.Max(MaxSeconds),
		),
		validation.Field(&c.FailureThreshold,
			validation.Required,
			validation.Min(1),
		),
		validation.Field(&c.Timeout,
			validation.Required,
			validation.Min(1),
			validation.Max(MaxSeconds),
		),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.LogFormat,
			validation.Required,
			validation.In(LogFormatText, LogFormatJSON),
		),
		validation.Field(&c.Color,
			validation.Required,
			validation.In(ColorAuto, ColorAlways, ColorNever),
		),
	)
}

// Target is the parsed URL. It is nil for a config that did not come from
// Load.
func (c *Config) Target() *url.URL {
	return c.target
}

func (c *Config) DelayDuration() time.Duration {
	return time.Duration(c.Delay) * time.Second
}

func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func validateTargetURL(value interface{}) error {
	targetURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(targetURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
