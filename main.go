package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/annoq/consensus-review/internal/client"
	"github.com/annoq/consensus-review/internal/config"
	"github.com/annoq/consensus-review/internal/export"
	"github.com/annoq/consensus-review/internal/platform"
	"github.com/annoq/consensus-review/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.annoq.consensus-review"
	AppName = "Consensus Review"

	WindowWidth  = 800
	WindowHeight = 600

	historyFilename = "export-history.db"
)

func main() {
	// Log version information
	fmt.Printf("Consensus Review v%s starting...\n", version)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewReviewTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	exportDir := settings.GetExportDirectory()
	if err := platform.CreateDirectoryIfNotExists(exportDir); err != nil {
		fmt.Printf("failed to ensure export dir: %v\n", err)
	}

	apiClient := newAPIClient(settings, logger)

	history, err := export.OpenHistory(historyPath(myApp))
	if err != nil {
		logger.Warn("main.history.open_error", "error", err)
	}
	exportSvc := export.NewService(apiClient, history, exportDir, logger)

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, apiClient, exportSvc)
	rootUI.SetOnAPIConfigChanged(func() {
		rebuilt := newAPIClient(settings, logger)
		rootUI.SetAPI(rebuilt)
		exportSvc.SetFetcher(rebuilt)
		exportSvc.SetExportDirectory(settings.GetExportDirectory())
	})

	// Show and run
	myWindow.ShowAndRun()
}

// newAPIClient builds an annotation server client from the current settings
func newAPIClient(settings *config.Settings, logger *slog.Logger) *client.Client {
	return client.New(
		settings.GetServerURL(),
		settings.GetAPIToken(),
		time.Duration(settings.GetRequestTimeoutSeconds())*time.Second,
		logger,
	)
}

// historyPath locates the export history database inside the app storage
func historyPath(a fyne.App) string {
	return filepath.Join(a.Storage().RootURI().Path(), historyFilename)
}
