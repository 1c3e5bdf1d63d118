package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestServerURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	url := settings.GetServerURL()
	if url != DefaultServerURL {
		t.Errorf("Expected default server URL %s, got %s", DefaultServerURL, url)
	}

	// Test setting custom value
	settings.SetServerURL("https://cvat.example.com")
	if got := settings.GetServerURL(); got != "https://cvat.example.com" {
		t.Errorf("Expected server URL https://cvat.example.com, got %s", got)
	}

	// Trailing slashes are trimmed
	settings.SetServerURL("https://cvat.example.com/")
	if got := settings.GetServerURL(); got != "https://cvat.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", got)
	}

	// Blank resets to the default
	settings.SetServerURL("   ")
	if got := settings.GetServerURL(); got != DefaultServerURL {
		t.Errorf("Blank URL should default to %s, got %s", DefaultServerURL, got)
	}
}

func TestAPIToken(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if token := settings.GetAPIToken(); token != "" {
		t.Errorf("Expected empty token by default, got %s", token)
	}

	settings.SetAPIToken("  secret-token  ")
	if got := settings.GetAPIToken(); got != "secret-token" {
		t.Errorf("Expected trimmed token 'secret-token', got %s", got)
	}
}

func TestExportDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetExportDirectory()
	if dir == "" {
		t.Error("Export directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/reports"
	settings.SetExportDirectory(customDir)

	retrievedDir := settings.GetExportDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected export directory %s, got %s", customDir, retrievedDir)
	}
}

func TestRequestTimeout(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	timeout := settings.GetRequestTimeoutSeconds()
	if timeout != DefaultRequestTimeout {
		t.Errorf("Expected default timeout %d, got %d", DefaultRequestTimeout, timeout)
	}

	// Test setting custom value
	settings.SetRequestTimeoutSeconds(60)
	if got := settings.GetRequestTimeoutSeconds(); got != 60 {
		t.Errorf("Expected timeout 60, got %d", got)
	}

	// Test boundary values
	settings.SetRequestTimeoutSeconds(1) // Should be clamped to minimum
	if settings.GetRequestTimeoutSeconds() != MinRequestTimeout {
		t.Errorf("Timeout should be clamped to minimum %d", MinRequestTimeout)
	}

	settings.SetRequestTimeoutSeconds(1000) // Should be clamped to maximum
	if settings.GetRequestTimeoutSeconds() != MaxRequestTimeout {
		t.Errorf("Timeout should be clamped to maximum %d", MaxRequestTimeout)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("en")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestAutoRevealExports(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetAutoRevealExports() {
		t.Error("Auto reveal should default to true")
	}

	settings.SetAutoRevealExports(false)
	if settings.GetAutoRevealExports() {
		t.Error("Expected auto reveal to be disabled")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
