package config

import (
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/annoq/consensus-review/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL         = "server_url"
	KeyAPIToken          = "api_token"
	KeyExportDir         = "export_directory"
	KeyLanguage          = "app_language"
	KeyAutoRevealExports = "auto_reveal_exports"
	KeyRequestTimeout    = "request_timeout_seconds"
)

// Default values
const (
	DefaultServerURL         = "http://localhost:8080"
	DefaultLanguage          = "system"
	DefaultAutoRevealExports = true
	DefaultRequestTimeout    = 30

	// Request timeout clamp bounds in seconds
	MinRequestTimeout = 5
	MaxRequestTimeout = 300

	// Subdirectory of the user's downloads folder used for archived reports
	exportSubdir = "consensus-reports"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the annotation server base URL
func (s *Settings) GetServerURL() string {
	url := s.app.Preferences().String(KeyServerURL)
	if url == "" {
		s.SetServerURL(DefaultServerURL)
		return DefaultServerURL
	}
	return url
}

// SetServerURL sets the annotation server base URL. Trailing slashes are
// trimmed so path joining stays uniform.
func (s *Settings) SetServerURL(url string) {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		url = DefaultServerURL
	}
	s.app.Preferences().SetString(KeyServerURL, url)
}

// GetAPIToken returns the API token attached to server requests, or ""
// when the server is accessed anonymously
func (s *Settings) GetAPIToken() string {
	return s.app.Preferences().String(KeyAPIToken)
}

// SetAPIToken sets the API token
func (s *Settings) SetAPIToken(token string) {
	s.app.Preferences().SetString(KeyAPIToken, strings.TrimSpace(token))
}

// GetExportDirectory returns the directory archived reports are written to
func (s *Settings) GetExportDirectory() string {
	dir := s.app.Preferences().String(KeyExportDir)
	if dir == "" {
		downloadsDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			downloadsDir = "/tmp"
		}
		dir = filepath.Join(downloadsDir, exportSubdir)
		s.SetExportDirectory(dir)
	}
	return dir
}

// SetExportDirectory sets the report export directory
func (s *Settings) SetExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyExportDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealExports returns whether to open the file manager on a
// finished report export
func (s *Settings) GetAutoRevealExports() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealExports, DefaultAutoRevealExports)
}

// SetAutoRevealExports sets whether to auto-reveal finished exports
func (s *Settings) SetAutoRevealExports(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealExports, autoReveal)
}

// GetRequestTimeoutSeconds returns the HTTP request timeout
func (s *Settings) GetRequestTimeoutSeconds() int {
	value := s.app.Preferences().Int(KeyRequestTimeout)
	if value <= 0 {
		s.SetRequestTimeoutSeconds(DefaultRequestTimeout)
		return DefaultRequestTimeout
	}
	return value
}

// SetRequestTimeoutSeconds sets the HTTP request timeout, clamped to a
// sane range
func (s *Settings) SetRequestTimeoutSeconds(seconds int) {
	if seconds < MinRequestTimeout {
		seconds = MinRequestTimeout
	}
	if seconds > MaxRequestTimeout {
		seconds = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
