package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/topic"
)

// Notifier kinds
const (
	NotifierLocal    = "local"
	NotifierNATS     = "nats"
	NotifierPostgres = "postgres"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabaseMemory   = "memory"
)

// DefaultSuggestions are offered on the admin screen as one-click topics.
var DefaultSuggestions = []string{"봄바람", "꽃놀이", "새싹", "진달래", "벚꽃", "개나리"}

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	AdminPassword    string
	FeaturedCategory string
	Suggestions      []string
	TimeZone         string
	AutoplayInterval time.Duration
	SeedTopics       bool

	Notifier string
	NATSURL  string

	LogLevel   string
	ConfigFile string
}

// fileConfig is the YAML shape of the optional config file.
type fileConfig struct {
	Port             int      `yaml:"port"`
	DatabaseURL      string   `yaml:"database_url"`
	DatabaseType     string   `yaml:"database_type"`
	AdminPassword    string   `yaml:"admin_password"`
	FeaturedCategory string   `yaml:"featured_category"`
	Suggestions      []string `yaml:"suggestions"`
	TimeZone         string   `yaml:"time_zone"`
	AutoplayInterval string   `yaml:"autoplay_interval"`
	SeedTopics       bool     `yaml:"seed_topics"`
	Notifier         string   `yaml:"notifier"`
	NATSURL          string   `yaml:"nats_url"`
	LogLevel         string   `yaml:"log_level"`
}

// LoadDotEnv loads variables from path (default .env) into the environment
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// first returns the first non-empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseFlags validates flags and fills the rest from the environment, the
// config file, and defaults, in that order.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var interval, suggestions string

	fs := flag.NewFlagSet("samhaengsi", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML config file")

	// Live updates
	fs.StringVar(&cfg.Notifier, "notifier", "", "Change notifier (local, nats or postgres)")
	fs.StringVar(&cfg.NATSURL, "nats-url", "", "NATS server URL")

	// Content
	fs.StringVar(&cfg.FeaturedCategory, "category", "", "Featured topic category")
	fs.StringVar(&suggestions, "suggestions", "", "Comma-separated suggested topics")
	fs.StringVar(&cfg.TimeZone, "tz", "", "Time zone for the topic of the day")
	fs.StringVar(&interval, "autoplay", "", "Carousel autoplay interval (e.g. 4s)")
	fs.BoolVar(&cfg.SeedTopics, "seed", false, "Add suggested topics when the pool is empty")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Admin password (prefer env)")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.ConfigFile = first(cfg.ConfigFile, os.Getenv("CONFIG_FILE"))
	fc, err := loadFile(cfg.ConfigFile)
	if err != nil {
		return Config{}, err
	}

	// Fall back to environment variables, then the file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if fc.Port != 0 {
			cfg.Port = fc.Port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseType = first(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), fc.DatabaseType, DatabaseSQLite)
	cfg.DatabaseURL = first(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), fc.DatabaseURL)
	switch cfg.DatabaseType {
	case DatabaseSQLite:
		cfg.DatabaseURL = first(cfg.DatabaseURL, "file:samhaengsi.db")
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	cfg.Notifier = first(cfg.Notifier, os.Getenv("NOTIFIER"), fc.Notifier, NotifierLocal)
	cfg.NATSURL = first(cfg.NATSURL, os.Getenv("NATS_URL"), fc.NATSURL)
	switch cfg.Notifier {
	case NotifierLocal:
	case NotifierNATS:
		if cfg.NATSURL == "" {
			return Config{}, errors.New("NATS_URL required for the nats notifier")
		}
	case NotifierPostgres:
		if cfg.DatabaseType != DatabasePostgres {
			return Config{}, errors.New("postgres notifier requires a postgres database")
		}
	default:
		return Config{}, fmt.Errorf("unknown notifier %q", cfg.Notifier)
	}

	cfg.AdminPassword = first(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"), fc.AdminPassword)

	cfg.FeaturedCategory = first(cfg.FeaturedCategory, os.Getenv("FEATURED_CATEGORY"), fc.FeaturedCategory, models.CategorySpring)
	if !models.IsValidCategory(cfg.FeaturedCategory) {
		return Config{}, fmt.Errorf("unknown category %q", cfg.FeaturedCategory)
	}

	suggestions = first(suggestions, os.Getenv("SUGGESTIONS"))
	switch {
	case suggestions != "":
		cfg.Suggestions = splitList(suggestions)
	case len(fc.Suggestions) > 0:
		cfg.Suggestions = fc.Suggestions
	default:
		cfg.Suggestions = append([]string(nil), DefaultSuggestions...)
	}
	for i, w := range cfg.Suggestions {
		word, err := topic.NormalizeWord(w)
		if err != nil {
			return Config{}, fmt.Errorf("invalid suggestion %q: %w", w, err)
		}
		cfg.Suggestions[i] = word
	}

	cfg.TimeZone = first(cfg.TimeZone, os.Getenv("TIME_ZONE"), fc.TimeZone, "Asia/Seoul")
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return Config{}, fmt.Errorf("invalid time zone: %w", err)
	}

	interval = first(interval, os.Getenv("AUTOPLAY_INTERVAL"), fc.AutoplayInterval, "4s")
	cfg.AutoplayInterval, err = time.ParseDuration(interval)
	if err != nil || cfg.AutoplayInterval <= 0 {
		return Config{}, fmt.Errorf("invalid autoplay interval %q", interval)
	}

	if !cfg.SeedTopics {
		cfg.SeedTopics = fc.SeedTopics || os.Getenv("SEED_TOPICS") == "true"
	}

	cfg.LogLevel = strings.ToLower(first(cfg.LogLevel, os.Getenv("LOG_LEVEL"), fc.LogLevel, "info"))

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Location returns the configured time zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
