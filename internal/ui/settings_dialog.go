package ui

import (
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/annoq/consensus-review/internal/config"
	"github.com/annoq/consensus-review/internal/validate"
)

// SettingsDialog represents the application settings dialog
type SettingsDialog struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	onSaved      func()

	serverURLEntry  *widget.Entry
	apiTokenEntry   *widget.Entry
	exportDirEntry  *widget.Entry
	timeoutEntry    *widget.Entry
	autoRevealCheck *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onSaved fires after the
// settings are written.
func NewSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	return &SettingsDialog{
		window:       window,
		settings:     settings,
		localization: localization,
		onSaved:      onSaved,
	}
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	content := sd.createUI()
	sd.loadCurrentSettings()

	d := dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		content,
		func(save bool) {
			if save {
				sd.onSave()
			}
		},
		sd.window,
	)
	d.Resize(fyne.NewSize(540, 420))
	d.Show()
}

// createUI creates the dialog content
func (sd *SettingsDialog) createUI() fyne.CanvasObject {
	sd.serverURLEntry = widget.NewEntry()
	sd.serverURLEntry.SetPlaceHolder(config.DefaultServerURL)

	sd.apiTokenEntry = widget.NewPasswordEntry()

	sd.exportDirEntry = widget.NewEntry()
	browseButton := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	exportDirRow := container.NewBorder(nil, nil, nil, browseButton, sd.exportDirEntry)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.Validator = validate.IntRange(config.MinRequestTimeout, config.MaxRequestTimeout).Validator()

	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	return container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyServerURL)),
		sd.serverURLEntry,
		widget.NewLabel(sd.localization.GetText(KeyAPIToken)),
		sd.apiTokenEntry,
		widget.NewLabel(sd.localization.GetText(KeyExportDirectory)),
		exportDirRow,
		widget.NewLabel(sd.localization.GetText(KeyRequestTimeout)),
		sd.timeoutEntry,
		widget.NewSeparator(),
		sd.autoRevealCheck,
	)
}

// loadCurrentSettings fills the dialog from the stored settings
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverURLEntry.SetText(sd.settings.GetServerURL())
	sd.apiTokenEntry.SetText(sd.settings.GetAPIToken())
	sd.exportDirEntry.SetText(sd.settings.GetExportDirectory())
	sd.timeoutEntry.SetText(strconv.Itoa(sd.settings.GetRequestTimeoutSeconds()))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealExports())
}

// onBrowseDirectory opens a folder picker for the export directory
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.Printf("Folder selection failed: %v", err)
			return
		}
		if uri == nil {
			return
		}
		sd.exportDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave validates and stores the edited settings
func (sd *SettingsDialog) onSave() {
	timeout, err := strconv.Atoi(strings.TrimSpace(sd.timeoutEntry.Text))
	if err != nil {
		dialog.ShowInformation(sd.localization.GetText(KeySettings),
			sd.localization.GetText(KeyRequestTimeout)+": "+err.Error(), sd.window)
		return
	}

	sd.settings.SetServerURL(sd.serverURLEntry.Text)
	sd.settings.SetAPIToken(sd.apiTokenEntry.Text)
	sd.settings.SetExportDirectory(sd.exportDirEntry.Text)
	sd.settings.SetRequestTimeoutSeconds(timeout)
	sd.settings.SetAutoRevealExports(sd.autoRevealCheck.Checked)

	log.Printf("Settings saved: server=%s timeout=%ds", sd.settings.GetServerURL(), sd.settings.GetRequestTimeoutSeconds())

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
