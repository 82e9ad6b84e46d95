package cfg

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile reads and validates a source profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateProfile(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

func validateProfile(profile *Profile) error {
	if profile.Source.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if profile.Source.Title == "" {
		return fmt.Errorf("source title is required")
	}
	if err := validateURL(profile.Source.URL); err != nil {
		return err
	}
	if profile.Source.BaseURL != "" {
		if err := validateURL(profile.Source.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: host is required", raw)
	}
	return nil
}
