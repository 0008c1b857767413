package config

import "testing"

func TestBackendConfigured(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"placeholder default", PlaceholderBaseURL, false},
		{"edited placeholder", "http://your-backend-url:5000", false},
		{"empty", "", false},
		{"real deployment", "http://water.example.net:5000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{BackendURL: tt.url}
			if got := c.BackendConfigured(); got != tt.want {
				t.Errorf("BackendConfigured(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
