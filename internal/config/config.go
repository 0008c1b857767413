package config

import "strings"

// PlaceholderBaseURL marks a deployment where the backend address has not
// been filled in yet. While it is in place, prediction submissions are
// short-circuited to a configuration error before any network call; the
// other panels are left to fail naturally.
const PlaceholderBaseURL = "https://your-backend-url.example.com"

// placeholderMarker is the recognizable fragment checked for, so partial
// edits of the placeholder still count as unconfigured.
const placeholderMarker = "your-backend-url"

// Config is the process-wide configuration, parsed once at startup.
// Language and backend address are fixed for the process lifetime.
type Config struct {
	Listen            string `help:"HTTP listen address." default:":8080" env:"HYDROINTEL_LISTEN"`
	BackendURL        string `help:"Base address of the prediction backend." default:"https://your-backend-url.example.com" env:"HYDROINTEL_BACKEND_URL"`
	Lang              string `help:"UI language tag (en, hi)." default:"en" env:"HYDROINTEL_LANG"`
	FeaturePrediction bool   `help:"Enable the feature-vector prediction form alongside city-based prediction." default:"true" env:"HYDROINTEL_FEATURE_PREDICTION" negatable:""`
}

// BackendConfigured reports whether the backend address has been replaced
// with a real deployment value.
func (c *Config) BackendConfigured() bool {
	return c.BackendURL != "" && !strings.Contains(c.BackendURL, placeholderMarker)
}
