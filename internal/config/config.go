package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// Config is the full doordeck configuration
type Config struct {
	Scrape ScrapeSettings `yaml:"scrape"`
	Fetch  FetchSettings  `yaml:"fetch"`
	Deck   DeckSettings   `yaml:"deck"`
	Server ServerSettings `yaml:"server"`
	Log    LogSettings    `yaml:"log"`
}

// ScrapeSettings controls the wiki scrapers
type ScrapeSettings struct {
	BaseURL         string        `yaml:"baseURL"`
	VillagerListURL string        `yaml:"villagerListURL"`
	UserAgent       string        `yaml:"userAgent"`
	Timeout         time.Duration `yaml:"timeout"`
	Delay           time.Duration `yaml:"delay"` // pause between page requests
	Browser         bool          `yaml:"browser"`
	CardsFile       string        `yaml:"cardsFile"`
	URLsFile        string        `yaml:"urlsFile"`
	OverridesFile   string        `yaml:"overridesFile"` // empty uses the embedded table
}

// FetchSettings controls the image fetcher
type FetchSettings struct {
	ImageDir    string        `yaml:"imageDir"`
	FilePrefix  string        `yaml:"filePrefix"`
	Overwrite   bool          `yaml:"overwrite"`
	JPEGQuality int           `yaml:"jpegQuality"`
	Delay       time.Duration `yaml:"delay"`
	PathsFile   string        `yaml:"pathsFile"`
}

// DeckSettings controls the deck builder
type DeckSettings struct {
	Layout        string `yaml:"layout"`
	PerSlide      int    `yaml:"perSlide"`
	FontFace      string `yaml:"fontFace"`
	BellsIcon     string `yaml:"bellsIcon"`
	ResidentsFile string `yaml:"residentsFile"`
	Output        string `yaml:"output"`
	PreviewDir    string `yaml:"previewDir"`
}

// ServerSettings contains preview server settings
type ServerSettings struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`      // requests per second
	RateLimitBurst int     `yaml:"rateLimitBurst"` // burst size
}

// LogSettings selects the zap logger
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	validLayouts    = map[string]bool{"classic": true, "adjusted": true, "cards": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true}
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Scrape: ScrapeSettings{
			BaseURL:         "https://clashroyale.fandom.com",
			VillagerListURL: "https://animalcrossing.fandom.com/wiki/Villager_list_(New_Horizons)",
			UserAgent:       "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36",
			Timeout:         30 * time.Second,
			Delay:           500 * time.Millisecond,
			CardsFile:       "clash_royale_card_data.json",
			URLsFile:        "villager_image_urls.json",
		},
		Fetch: FetchSettings{
			ImageDir:    "images",
			JPEGQuality: 90,
			Delay:       200 * time.Millisecond,
			PathsFile:   "image_paths.csv",
		},
		Deck: DeckSettings{
			Layout:        "adjusted",
			PerSlide:      3,
			FontFace:      "Perpetua",
			ResidentsFile: "residents.csv",
			Output:        "Residents_Presentation.pptx",
			PreviewDir:    "previews",
		},
		Server: ServerSettings{
			Host:            "127.0.0.1",
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Scrape.BaseURL == "" {
		return fmt.Errorf("scrape.baseURL must be set")
	}
	if c.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape.timeout must be positive")
	}
	if c.Scrape.Delay < 0 || c.Fetch.Delay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}

	if c.Fetch.ImageDir == "" {
		return fmt.Errorf("fetch.imageDir must be set")
	}
	if c.Fetch.JPEGQuality < 1 || c.Fetch.JPEGQuality > 100 {
		return fmt.Errorf("fetch.jpegQuality must be between 1 and 100")
	}

	if !validLayouts[c.Deck.Layout] {
		return fmt.Errorf("deck.layout %q is not one of classic, adjusted, cards", c.Deck.Layout)
	}
	if c.Deck.PerSlide < 1 || c.Deck.PerSlide > 3 {
		return fmt.Errorf("deck.perSlide must be between 1 and 3")
	}
	if c.Deck.Output == "" {
		return fmt.Errorf("deck.output must be set")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("server rate limit must be positive")
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log.level %q is not valid", c.Log.Level)
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("log.format %q is not valid", c.Log.Format)
	}

	return nil
}

// Addr returns the preview server listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
