package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("doordeck")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// DOORDECK_SCRAPE_DELAY overrides scrape.delay, and so on
	v.SetEnvPrefix("doordeck")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("server.port", "DOORDECK_SERVER_PORT", "PORT")
	v.BindEnv("log.level", "DOORDECK_LOG_LEVEL", "LOG_LEVEL")

	setDefaults(v, DefaultConfig())

	// The config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("scrape.baseURL", d.Scrape.BaseURL)
	v.SetDefault("scrape.villagerListURL", d.Scrape.VillagerListURL)
	v.SetDefault("scrape.userAgent", d.Scrape.UserAgent)
	v.SetDefault("scrape.timeout", d.Scrape.Timeout)
	v.SetDefault("scrape.delay", d.Scrape.Delay)
	v.SetDefault("scrape.browser", d.Scrape.Browser)
	v.SetDefault("scrape.cardsFile", d.Scrape.CardsFile)
	v.SetDefault("scrape.urlsFile", d.Scrape.URLsFile)
	v.SetDefault("scrape.overridesFile", d.Scrape.OverridesFile)

	v.SetDefault("fetch.imageDir", d.Fetch.ImageDir)
	v.SetDefault("fetch.filePrefix", d.Fetch.FilePrefix)
	v.SetDefault("fetch.overwrite", d.Fetch.Overwrite)
	v.SetDefault("fetch.jpegQuality", d.Fetch.JPEGQuality)
	v.SetDefault("fetch.delay", d.Fetch.Delay)
	v.SetDefault("fetch.pathsFile", d.Fetch.PathsFile)

	v.SetDefault("deck.layout", d.Deck.Layout)
	v.SetDefault("deck.perSlide", d.Deck.PerSlide)
	v.SetDefault("deck.fontFace", d.Deck.FontFace)
	v.SetDefault("deck.bellsIcon", d.Deck.BellsIcon)
	v.SetDefault("deck.residentsFile", d.Deck.ResidentsFile)
	v.SetDefault("deck.output", d.Deck.Output)
	v.SetDefault("deck.previewDir", d.Deck.PreviewDir)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.shutdownTimeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.rateLimit", d.Server.RateLimit)
	v.SetDefault("server.rateLimitBurst", d.Server.RateLimitBurst)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
