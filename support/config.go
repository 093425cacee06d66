package support

import (
	"bytes"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	ExporterNone    = "none"
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
	ExporterJaeger  = "jaeger"
)

// Config holds the process settings. Values are resolved from defaults, then
// an optional YAML file, then environment variables named after the YAML keys
// in screaming snake case (log_level -> LOG_LEVEL).
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	LogLevel string `yaml:"log_level"`

	// LogDir holds combined.log and error.log. Empty disables the file sinks.
	LogDir string `yaml:"log_dir"`

	// MetricsAddr enables a separate prometheus listener when set.
	MetricsAddr string `yaml:"metrics_addr"`

	TraceExporter string `yaml:"trace_exporter"`
	TraceEndpoint string `yaml:"trace_endpoint"`
	TraceInsecure bool   `yaml:"trace_insecure"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Port:            3000,
		LogLevel:        "info",
		LogDir:          "logs",
		TraceExporter:   ExporterNone,
		ShutdownTimeout: 10 * time.Second,
	}
}

type LookupEnv func(key string) (string, bool)

func LoadConfig(path string, lookup LookupEnv) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "can't read config %q", path)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Wrapf(err, "can't parse config %q", path)
		}
	}

	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func EnvName(key string) string {
	return strcase.ToScreamingSnake(key)
}

func (c *Config) applyEnv(lookup LookupEnv) error {
	overrides := map[string]func(value string) error{
		"host": func(value string) error {
			c.Host = value
			return nil
		},
		"port": func(value string) error {
			port, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			c.Port = port
			return nil
		},
		"log_level": func(value string) error {
			c.LogLevel = value
			return nil
		},
		"log_dir": func(value string) error {
			c.LogDir = value
			return nil
		},
		"metrics_addr": func(value string) error {
			c.MetricsAddr = value
			return nil
		},
		"trace_exporter": func(value string) error {
			c.TraceExporter = value
			return nil
		},
		"trace_endpoint": func(value string) error {
			c.TraceEndpoint = value
			return nil
		},
		"trace_insecure": func(value string) error {
			insecure, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			c.TraceInsecure = insecure
			return nil
		},
		"shutdown_timeout": func(value string) error {
			timeout, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			c.ShutdownTimeout = timeout
			return nil
		},
	}

	for key, apply := range overrides {
		name := EnvName(key)
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := apply(value); err != nil {
			return errors.Wrapf(err, "invalid %s", name)
		}
	}

	return nil
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}

	switch strings.ToLower(c.TraceExporter) {
	case ExporterNone, "":
	case ExporterConsole:
	case ExporterOTLP, ExporterJaeger:
		if c.TraceEndpoint == "" {
			return errors.Errorf("trace exporter %q requires a trace endpoint", c.TraceExporter)
		}
	default:
		return errors.Errorf("unknown trace exporter %q", c.TraceExporter)
	}

	if c.ShutdownTimeout <= 0 {
		return errors.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}

	return nil
}

// Address is the listen address of the API server.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
