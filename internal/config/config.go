// Package config loads renderwatch options with the precedence
// CLI flag > RENDERWATCH_* environment variable > TOML file > default.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pranshuparmar/renderwatch/internal/logging"
)

// EnvPrefix is prepended to every env tag.
const EnvPrefix = "RENDERWATCH_"

// Options is the full set of tunables. Each field's flag name is derived
// from its Go name (MonitorBypass -> --monitor-bypass).
type Options struct {
	Config string

	LoggingLevel  string `toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `toml:"logging.format" env:"LOGGING_FORMAT"`

	ExecutorCapture string        `toml:"executor.capture" env:"EXECUTOR_CAPTURE"`
	ExecutorTempDir string        `toml:"executor.temp_dir" env:"EXECUTOR_TEMP_DIR"`
	ExecutorTimeout time.Duration `toml:"executor.timeout" env:"EXECUTOR_TIMEOUT"`

	MonitorBypass        string `toml:"monitor.bypass" env:"MONITOR_BYPASS"`
	MonitorWorkerPattern string `toml:"monitor.worker_pattern" env:"MONITOR_WORKER_PATTERN"`
	MonitorHostPattern   string `toml:"monitor.host_pattern" env:"MONITOR_HOST_PATTERN"`

	WorkerPath      string `toml:"worker.path" env:"WORKER_PATH"`
	MetricsTextfile string `toml:"metrics.textfile" env:"METRICS_TEXTFILE"`
	NoColor         bool   `toml:"output.no_color" env:"NO_COLOR"`
}

// Defaults returns the options used when nothing else is set.
func Defaults() Options {
	return Options{
		LoggingLevel:    "warn",
		LoggingFormat:   "text",
		ExecutorCapture: "tempfile",
		MonitorBypass:   "auto",
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// LoadConfig overlays the TOML file named by opts' Config field, then the
// environment, onto opts. Fields whose flag was set on cmd are left alone.
// A missing config file is not an error.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	changed := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = true
			}
		})
	}

	var configPath string
	if f := v.FieldByName("Config"); f.IsValid() {
		configPath = f.String()
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			var tree map[string]any
			if err := toml.Unmarshal(data, &tree); err != nil {
				return fmt.Errorf("failed to parse TOML config %s: %w", configPath, err)
			}
			for i := 0; i < v.NumField(); i++ {
				ft := t.Field(i)
				if changed[fieldNameToFlag(ft.Name)] {
					continue
				}
				if path := ft.Tag.Get("toml"); path != "" {
					if value := getNestedValue(tree, path); value != nil {
						if err := setFieldValue(v.Field(i), value); err != nil {
							return fmt.Errorf("config %s: %w", path, err)
						}
					}
				}
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	for i := 0; i < v.NumField(); i++ {
		ft := t.Field(i)
		if changed[fieldNameToFlag(ft.Name)] {
			continue
		}
		if key := ft.Tag.Get("env"); key != "" {
			if value := os.Getenv(EnvPrefix + key); value != "" {
				if err := setFieldValueFromString(v.Field(i), value); err != nil {
					return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
				}
			}
		}
	}

	return nil
}

// fieldNameToFlag converts "LoggingLevel" to "logging-level".
func fieldNameToFlag(name string) string {
	var out []rune
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			out = append(out, '-')
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// getNestedValue resolves a dotted path in a decoded TOML tree.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	if field.Type() == durationType {
		switch d := value.(type) {
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return err
			}
			field.SetInt(int64(parsed))
		case int64:
			field.SetInt(int64(time.Duration(d) * time.Second))
		default:
			return fmt.Errorf("want a duration, got %T", value)
		}
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int, reflect.Int64:
		if i, ok := value.(int64); ok {
			field.SetInt(i)
		}
	}
	return nil
}

func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	}
	return nil
}

// LoadLoggingModules reads per-module levels from the [logging] table.
// Keys other than level and format name modules. A missing or unreadable
// file yields an empty map.
func LoadLoggingModules(configPath string) map[string]string {
	modules := make(map[string]string)
	if configPath == "" {
		return modules
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return modules
	}

	var raw struct {
		Logging map[string]any `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return modules
	}

	for key, value := range raw.Logging {
		if key == "level" || key == "format" {
			continue
		}
		if s, ok := value.(string); ok {
			modules[key] = s
		}
	}
	return modules
}

// LoggingConfig builds the logging configuration for opts.
func (o Options) LoggingConfig() logging.Config {
	return logging.Config{
		Level:   o.LoggingLevel,
		Format:  o.LoggingFormat,
		Modules: LoadLoggingModules(o.Config),
	}
}
