package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/lysyi3m/relnotes-feed/app/feed"
	"github.com/lysyi3m/relnotes-feed/app/source"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	DefaultURL    = "https://developers.google.com/android/management/release-notes"
	DefaultTitle  = "Google Android Management API Release Notes"
	DefaultAuthor = "Google Developers"
)

var ErrUsage = errors.New("usage error")

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	Listen  string `long:"listen" env:"RELNOTES_LISTEN" description:"Serve feeds over HTTP on this address (e.g. :8080) instead of printing one"`
	Profile string `long:"profile" env:"RELNOTES_PROFILE" description:"YAML file describing the release-notes source"`

	// Source configuration, overrides the profile
	URL      string `long:"url" env:"RELNOTES_URL" description:"Release-notes page to fetch"`
	BaseURL  string `long:"base-url" env:"RELNOTES_BASE_URL" description:"Base URL for entry ids and links (defaults to --url)"`
	Title    string `long:"title" env:"RELNOTES_TITLE" description:"Feed title"`
	Author   string `long:"author" env:"RELNOTES_AUTHOR" description:"Feed author name"`
	Selector string `long:"selector" env:"RELNOTES_SELECTOR" description:"CSS selector of release sections (default: section.expandable)"`

	UserAgent string        `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests"`
	Timeout   time.Duration `long:"timeout" env:"RELNOTES_TIMEOUT" default:"30s" description:"HTTP request timeout"`

	Timezone string `long:"timezone" env:"TZ" description:"Timezone for log timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		Format string `positional-arg-name:"format" description:"Output format: atom or rss"`
	} `positional-args:"yes"`
}

// Load parses args (without the program name) and the environment. A .env
// file in the working directory is read first if present. When help was
// requested it is written to stdout and Load returns nil, nil.
func Load(args []string, stdout io.Writer) (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default &^ flags.PrintErrors)
	parser.Usage = "[OPTIONS] <atom|rss>"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				parser.WriteHelp(stdout)
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, rest)
	}

	cfg := &Cfg{
		Listen:    raw.Listen,
		UserAgent: cmp.Or(raw.UserAgent, "relnotes-feed/"+GetVersion()),
		Timeout:   raw.Timeout,
		Timezone:  raw.Timezone,
		Debug:     raw.Debug,
		Version:   GetVersion(),
	}

	if raw.Args.Format != "" || raw.Listen == "" {
		format, err := feed.ParseFormat(raw.Args.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		cfg.Format = format
	}

	var profile ProfileSource
	if raw.Profile != "" {
		p, err := LoadProfile(raw.Profile)
		if err != nil {
			return nil, err
		}
		profile = p.Source
		slog.Debug("Profile loaded", "path", raw.Profile, "url", profile.URL)
	}

	cfg.URL = cmp.Or(raw.URL, profile.URL, DefaultURL)
	cfg.BaseURL = cmp.Or(raw.BaseURL, profile.BaseURL, cfg.URL)
	cfg.Title = cmp.Or(raw.Title, profile.Title, DefaultTitle)
	cfg.Author = cmp.Or(raw.Author, profile.Author, DefaultAuthor)
	cfg.Selector = cmp.Or(raw.Selector, profile.Selector, source.DefaultSelector)

	if err := validateURL(cfg.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if _, err := cascadia.Compile(cfg.Selector); err != nil {
		return nil, fmt.Errorf("%w: invalid selector %q: %v", ErrUsage, cfg.Selector, err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func (c *Cfg) Channel() feed.Channel {
	return feed.Channel{
		Title:     c.Title,
		SourceURL: c.URL,
		BaseURL:   c.BaseURL,
		Author:    c.Author,
		Generator: "relnotes-feed/" + c.Version,
	}
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
