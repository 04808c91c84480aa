package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "vclock/internal/platform/errors"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"

	FileName   = "vclock.yaml"
	envPrefix  = "VCLOCK_"
	defaultEnv = ".env"
)

type SoundPlugin struct {
	Binary string `yaml:"binary"`
	SHA256 string `yaml:"sha256"`
}

type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type Config struct {
	DataDir     string      `yaml:"-"`
	ConfigPath  string      `yaml:"-"`
	Backend     string      `yaml:"backend"`
	DBPath      string      `yaml:"db_path"`
	LogLevel    string      `yaml:"log_level"`
	LogFormat   string      `yaml:"log_format"`
	Locale      string      `yaml:"locale"`
	TimeFormat  int         `yaml:"time_format"`
	SoundPlugin SoundPlugin `yaml:"sound_plugin"`
	NATS        NATS        `yaml:"nats"`
	MetricsAddr string      `yaml:"metrics_addr"`
}

// Options carries the highest-precedence values, normally CLI flags.
type Options struct {
	DataDir    string
	ConfigPath string
	EnvFile    string
	Backend    string
	LogLevel   string
	LookupEnv  func(string) (string, bool)
}

func Default(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		ConfigPath: filepath.Join(dataDir, FileName),
		Backend:    BackendSQLite,
		LogLevel:   "info",
		LogFormat:  "text",
		Locale:     "en",
		TimeFormat: 12,
		NATS:       NATS{Subject: "vclock.notifications"},
	}
}

// Load resolves the configuration from defaults, the YAML file, a .env
// file, VCLOCK_* variables and opts, in increasing precedence.
func Load(opts Options) (Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		if v, ok := lookup(envPrefix + "DATA_DIR"); ok && v != "" {
			dataDir = v
		}
	}
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(base, "vclock")
	}

	cfg := Default(dataDir)
	if opts.ConfigPath != "" {
		cfg.ConfigPath = opts.ConfigPath
	}
	if err := readFile(cfg.ConfigPath, &cfg); err != nil {
		return Config{}, err
	}

	dotenv, err := readDotenv(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(envPrefix + key); ok {
			return v, true
		}
		v, ok := dotenv[envPrefix+key]
		return v, ok
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}

	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath(cfg.DataDir, cfg.Backend)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendBolt, BackendMemory:
	default:
		return fmt.Errorf("backend %q: %w", c.Backend, apperrors.ErrInvalidInput)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: %w", c.LogFormat, apperrors.ErrInvalidInput)
	}
	if c.TimeFormat != 12 && c.TimeFormat != 24 {
		return fmt.Errorf("time format %d: %w", c.TimeFormat, apperrors.ErrInvalidInput)
	}
	if c.SoundPlugin.Binary != "" && c.SoundPlugin.SHA256 == "" {
		return fmt.Errorf("sound plugin %s has no sha256: %w", c.SoundPlugin.Binary, apperrors.ErrInvalidInput)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		path = defaultEnv
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	strs := map[string]*string{
		"BACKEND":             &cfg.Backend,
		"DB_PATH":             &cfg.DBPath,
		"LOG_LEVEL":           &cfg.LogLevel,
		"LOG_FORMAT":          &cfg.LogFormat,
		"LOCALE":              &cfg.Locale,
		"SOUND_PLUGIN":        &cfg.SoundPlugin.Binary,
		"SOUND_PLUGIN_SHA256": &cfg.SoundPlugin.SHA256,
		"NATS_URL":            &cfg.NATS.URL,
		"NATS_SUBJECT":        &cfg.NATS.Subject,
		"METRICS_ADDR":        &cfg.MetricsAddr,
	}
	for key, dst := range strs {
		if v, ok := env(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := env("TIME_FORMAT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sTIME_FORMAT %q: %w", envPrefix, v, apperrors.ErrInvalidInput)
		}
		cfg.TimeFormat = n
	}
	return nil
}

func defaultDBPath(dataDir, backend string) string {
	switch backend {
	case BackendBolt:
		return filepath.Join(dataDir, "vclock.bolt")
	case BackendMemory:
		return ""
	}
	return filepath.Join(dataDir, "vclock.db")
}
