package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "ASTROPOST"
	configName = "config"
	configType = "toml"
)

var ErrMissingContentKey = errors.New("content api key is not configured (set OPENAI_API_KEY)")

var defaultEnvFiles = []string{".env", ".env.local"}

type Options struct {
	// ConfigFile is an explicit config path. When empty the search paths are used.
	ConfigFile string
	// EnvFiles overrides the dotenv files loaded before reading the environment.
	EnvFiles []string
}

type Content struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
}

type Images struct {
	APIKey      string
	APIURL      string
	DownloadDir string
}

type Compose struct {
	OutputDir string
	FontPath  string
}

type Platform struct {
	APIURL string
}

type Session struct {
	Path string
}

type Schedule struct {
	Time     domain.TimeOfDay
	Location *time.Location
}

type Publish struct {
	Mode      domain.PublishMode
	PacingMin time.Duration
	PacingMax time.Duration
}

type History struct {
	Path string
	Keep int
}

type Log struct {
	Level  string
	Format string
}

type Metrics struct {
	Listen string
}

type Config struct {
	Content  Content
	Images   Images
	Compose  Compose
	Platform Platform
	Session  Session
	Schedule Schedule
	Publish  Publish
	History  History
	Log      Log
	Metrics  Metrics

	// EnvFiles lists the dotenv files that were applied.
	EnvFiles []string
	// Warnings holds non-fatal findings, such as a missing image key.
	Warnings []string

	v *viper.Viper
}

// Viper exposes the underlying settings for adapters that read their own keys.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

func Load(opts Options) (*Config, error) {
	envFiles, err := loadEnvFiles(opts.EnvFiles)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.EnvFiles = envFiles

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.api_url", "https://api.openai.com/v1")
	v.SetDefault("content.model", "gpt-4o")
	v.SetDefault("content.temperature", 0.8)
	v.SetDefault("images.api_url", "https://api.pexels.com/v1")
	v.SetDefault("images.download_dir", "generated_images")
	v.SetDefault("compose.output_dir", "generated_posts")
	v.SetDefault("compose.font_path", "")
	v.SetDefault("platform.api_url", "https://i.instagram.com/api/v1")
	v.SetDefault("session.path", "instagram_session.json")
	v.SetDefault("schedule.time", "10:30")
	v.SetDefault("schedule.timezone", "Local")
	v.SetDefault("publish.mode", string(domain.PublishModeCarousel))
	v.SetDefault("publish.pacing_min", "30s")
	v.SetDefault("publish.pacing_max", "90s")
	v.SetDefault("history.path", "astropost-history.toml")
	v.SetDefault("history.keep", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.listen", "")
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"content.api_key": {envPrefix + "_CONTENT_API_KEY", "OPENAI_API_KEY"},
		"images.api_key":  {envPrefix + "_IMAGES_API_KEY", "PEXELS_API_KEY"},
		"log.level":       {envPrefix + "_LOG_LEVEL", "LOG_LEVEL"},
	}

	for key, names := range bindings {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	return nil
}

func loadEnvFiles(files []string) ([]string, error) {
	if files == nil {
		files = defaultEnvFiles
	}

	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
		loaded = append(loaded, file)
	}

	return loaded, nil
}

func readConfigFile(v *viper.Viper, explicit string) error {
	v.SetConfigType(configType)

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".astropost"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var errs []error

	cfg := &Config{
		Content: Content{
			APIKey:      strings.TrimSpace(v.GetString("content.api_key")),
			APIURL:      v.GetString("content.api_url"),
			Model:       v.GetString("content.model"),
			Temperature: v.GetFloat64("content.temperature"),
		},
		Images: Images{
			APIKey:      strings.TrimSpace(v.GetString("images.api_key")),
			APIURL:      v.GetString("images.api_url"),
			DownloadDir: v.GetString("images.download_dir"),
		},
		Compose: Compose{
			OutputDir: v.GetString("compose.output_dir"),
			FontPath:  v.GetString("compose.font_path"),
		},
		Platform: Platform{APIURL: v.GetString("platform.api_url")},
		Session:  Session{Path: v.GetString("session.path")},
		History: History{
			Path: v.GetString("history.path"),
			Keep: v.GetInt("history.keep"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Metrics: Metrics{Listen: v.GetString("metrics.listen")},
		v:       v,
	}

	if cfg.Content.APIKey == "" {
		errs = append(errs, ErrMissingContentKey)
	}
	if cfg.Images.APIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "image api key is not configured (set PEXELS_API_KEY); topics will be skipped at the image stage")
	}
	if cfg.Session.Path == "" {
		errs = append(errs, errors.New("session.path is empty"))
	}
	if cfg.History.Keep <= 0 {
		errs = append(errs, fmt.Errorf("history.keep must be positive, got %d", cfg.History.Keep))
	}

	at, err := domain.ParseTimeOfDay(v.GetString("schedule.time"))
	if err != nil {
		errs = append(errs, fmt.Errorf("schedule.time: %w", err))
	}
	cfg.Schedule.Time = at

	loc, err := time.LoadLocation(v.GetString("schedule.timezone"))
	if err != nil {
		errs = append(errs, fmt.Errorf("schedule.timezone: %w", err))
		loc = time.Local
	}
	cfg.Schedule.Location = loc

	cfg.Publish.Mode = domain.PublishMode(strings.ToLower(strings.TrimSpace(v.GetString("publish.mode"))))
	if !cfg.Publish.Mode.Valid() {
		errs = append(errs, fmt.Errorf("publish.mode: unsupported mode %q", cfg.Publish.Mode))
	}

	cfg.Publish.PacingMin, err = parseDuration(v, "publish.pacing_min")
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Publish.PacingMax, err = parseDuration(v, "publish.pacing_max")
	if err != nil {
		errs = append(errs, err)
	}
	if cfg.Publish.PacingMin < 0 {
		errs = append(errs, errors.New("publish.pacing_min must not be negative"))
	}
	if cfg.Publish.PacingMin > cfg.Publish.PacingMax {
		errs = append(errs, fmt.Errorf("publish.pacing_min %s exceeds publish.pacing_max %s", cfg.Publish.PacingMin, cfg.Publish.PacingMax))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}
