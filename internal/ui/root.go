package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/annoq/consensus-review/internal/client"
	"github.com/annoq/consensus-review/internal/config"
	"github.com/annoq/consensus-review/internal/export"
	"github.com/annoq/consensus-review/internal/model"
	"github.com/annoq/consensus-review/internal/platform"
	"github.com/annoq/consensus-review/internal/validate"
)

// RootUI represents the main application UI
type RootUI struct {
	window fyne.Window
	app    fyne.App

	api      client.API
	archiver export.Archiver
	settings *config.Settings

	localization *Localization

	taskEntry  *widget.Entry
	loadButton *widget.Button

	resultsTable *ResultsTable

	// Notification panel elements
	notificationPanel   *fyne.Container
	notificationLabel   *widget.Label
	notificationSpinner *widget.ProgressBarInfinite

	content *fyne.Container

	currentTaskID   int
	currentSettings *model.ConsensusSettings
	jobs            []model.Job
	reports         []model.ConsensusReport

	onAPIConfigChanged func()
}

// NewRootUI creates the main UI bound to the given server client and report
// archive service
func NewRootUI(window fyne.Window, app fyne.App, api client.API, archiver export.Archiver) *RootUI {
	ui := &RootUI{
		window:   window,
		app:      app,
		api:      api,
		archiver: archiver,
		settings: config.NewSettings(app),
	}

	ui.localization = NewLocalization()
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	log.Printf("NewRootUI: language=%s server=%s", ui.localization.GetCurrentLanguage(), ui.settings.GetServerURL())

	ui.resultsTable = NewResultsTable(ui.localization, ui.onOpenJob, ui.onDownloadReport, ui.onShowConflicts)
	ui.archiver.SetUpdateCallback(ui.onExportUpdate)

	ui.setupUI()
	ui.createMenu()

	return ui
}

// SetAPI replaces the annotation server client
func (ui *RootUI) SetAPI(api client.API) {
	ui.api = api
}

// SetOnAPIConfigChanged registers a callback fired after the server
// connection settings change
func (ui *RootUI) SetOnAPIConfigChanged(callback func()) {
	ui.onAPIConfigChanged = callback
}

// setupUI builds the window content
func (ui *RootUI) setupUI() {
	ui.taskEntry = widget.NewEntry()
	ui.taskEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTaskID))
	minTaskID := float64(1)
	ui.taskEntry.Validator = (validate.Rule{Min: &minTaskID, IntegerOnly: true}).Validator()
	ui.taskEntry.OnSubmitted = func(string) { ui.onLoadClick() }

	ui.loadButton = widget.NewButton(ui.localization.GetText(KeyLoad), ui.onLoadClick)
	ui.loadButton.Importance = widget.HighImportance

	topBar := container.NewBorder(nil, nil, nil, ui.loadButton, ui.taskEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Stop()
	ui.notificationSpinner.Hide()
	closeButton := widget.NewButton(IconClose, ui.hideNotification)
	closeButton.Importance = widget.LowImportance
	ui.notificationPanel = container.NewBorder(nil, nil, nil, closeButton,
		container.NewVBox(ui.notificationLabel, ui.notificationSpinner))
	ui.notificationPanel.Hide()

	ui.content = container.NewBorder(
		container.NewVBox(topBar, ui.notificationPanel),
		nil, nil, nil,
		ui.resultsTable.Content(),
	)

	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.window.SetContent(ui.content)
}

// createMenu builds the main menu
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu(ui.localization.GetText(KeyFile),
		fyne.NewMenuItem(ui.localization.GetText(KeyReload), ui.onReloadClick),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(ui.localization.GetText(KeyExportTable), ui.onExportTable),
		fyne.NewMenuItem(ui.localization.GetText(KeyExportHistory), ui.onShowExportHistory),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(IconSettings+" "+ui.localization.GetText(KeySettings), ui.onShowSettings),
	)

	consensusMenu := fyne.NewMenu(ui.localization.GetText(KeyConsensus),
		fyne.NewMenuItem(ui.localization.GetText(KeyConfigureConsensus), ui.onConfigureConsensus),
		fyne.NewMenuItem(ui.localization.GetText(KeyConsensusSettings), ui.onShowConsensusSettings),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(ui.localization.GetText(KeyRequestMerge), ui.onRequestMerge),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, consensusMenu, ui.createLanguageMenu())
	ui.window.SetMainMenu(mainMenu)
}

// createLanguageMenu builds the language menu with the active language marked
func (ui *RootUI) createLanguageMenu() *fyne.Menu {
	current := ui.localization.GetCurrentLanguage()
	languages := ui.localization.GetAvailableLanguages()

	items := make([]*fyne.MenuItem, 0, len(languages))
	for _, code := range []string{"en", "ru", "pt"} {
		lang := code
		label := languages[code]
		if code == current {
			label = "✓ " + label
		}
		items = append(items, fyne.NewMenuItem(label, func() {
			ui.onLanguageChange(lang)
		}))
	}

	return fyne.NewMenu(IconLanguage+" "+ui.localization.GetText(KeyLanguage), items...)
}

// onLanguageChange switches the UI language
func (ui *RootUI) onLanguageChange(lang string) {
	log.Printf("Language changed to: %s", lang)
	ui.localization.SetLanguage(lang)
	ui.settings.SetLanguage(lang)
	ui.refreshUITexts()
}

// refreshUITexts reapplies localized texts after a language change
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.taskEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterTaskID))
	ui.loadButton.SetText(ui.localization.GetText(KeyLoad))
	ui.resultsTable.RefreshTexts(ui.localization)
	ui.createMenu()
}

// onLoadClick validates the task ID input and starts loading
func (ui *RootUI) onLoadClick() {
	text := strings.TrimSpace(ui.taskEntry.Text)
	if text == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterTaskID), false)
		return
	}

	taskID, err := strconv.Atoi(text)
	if err != nil || taskID <= 0 {
		log.Printf("Invalid task ID input: %q", text)
		ui.showNotification(IconError+" "+ui.localization.GetText(KeyInvalidTaskID), false)
		return
	}

	ui.loadTask(taskID)
}

// onReloadClick reloads the current task
func (ui *RootUI) onReloadClick() {
	if ui.currentTaskID == 0 {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterTaskID), false)
		return
	}
	ui.loadTask(ui.currentTaskID)
}

// loadTask fetches jobs, reports, and settings of a task in the background
func (ui *RootUI) loadTask(taskID int) {
	log.Printf("Loading task %d", taskID)
	ui.showNotification(ui.localization.GetText(KeyLoadingTask), true)

	go func() {
		ctx := context.Background()

		jobs, err := ui.api.Jobs(ctx, taskID)
		if err != nil {
			ui.failLoad(taskID, "jobs", err)
			return
		}

		reports, err := ui.api.ConsensusReports(ctx, taskID)
		if err != nil {
			ui.failLoad(taskID, "consensus reports", err)
			return
		}

		var settingsPtr *model.ConsensusSettings
		settings, err := ui.api.ConsensusSettings(ctx, taskID)
		switch {
		case err == nil:
			settingsPtr = &settings
		case errors.Is(err, client.ErrNoSettings):
			log.Printf("Task %d has no consensus settings", taskID)
		default:
			ui.failLoad(taskID, "consensus settings", err)
			return
		}

		fyne.Do(func() {
			ui.currentTaskID = taskID
			ui.jobs = jobs
			ui.reports = reports
			ui.currentSettings = settingsPtr
			ui.resultsTable.SetData(jobs, reports)
			ui.showNotification(fmt.Sprintf("%s: %d jobs%s%d reports",
				ui.localization.GetText(KeyTaskLoaded), len(jobs), MiddleDotSeparator, len(reports)), false)
			log.Printf("Task %d loaded: %d jobs, %d reports", taskID, len(jobs), len(reports))
		})
	}()
}

// failLoad reports a failed load step from a background goroutine
func (ui *RootUI) failLoad(taskID int, step string, err error) {
	log.Printf("Loading %s for task %d failed: %v", step, taskID, err)
	fyne.Do(func() {
		ui.showNotification(IconError+" "+ui.localization.GetText(KeyLoadFailed)+": "+err.Error(), false)
	})
}

// onOpenJob opens the job detail page in the system browser
func (ui *RootUI) onOpenJob(job model.Job) {
	webURL := ui.api.WebURL(model.JobPath(job.TaskID, job.ID))
	log.Printf("Opening job %d at %s", job.ID, webURL)

	u, err := url.Parse(webURL)
	if err != nil {
		log.Printf("Invalid job URL %s: %v", webURL, err)
		widget.ShowPopUp(widget.NewLabel("Invalid job URL: "+webURL), ui.window.Canvas())
		return
	}

	if err := ui.app.OpenURL(u); err != nil {
		log.Printf("Opening browser failed: %v", err)
		// Leave a plain hyperlink the user can follow by hand
		widget.ShowPopUp(widget.NewHyperlink(webURL, u), ui.window.Canvas())
	}
}

// onShowConflicts shows the conflict breakdown of one row
func (ui *RootUI) onShowConflicts(row model.ReportRow) {
	breakdown := model.FormatConflictBreakdown(row.Report.Summary.ConflictsByType)
	if breakdown == "" {
		breakdown = DashPlaceholder
	}
	title := fmt.Sprintf("%s #%d%s%d %s",
		ui.localization.GetText(KeyColumnJob), row.Job.ID,
		MiddleDotSeparator, row.ConflictCount(), ui.localization.GetText(KeyColumnConflicts))
	dialog.ShowInformation(title, breakdown, ui.window)
}

// onDownloadReport starts archiving one report document
func (ui *RootUI) onDownloadReport(row model.ReportRow) {
	task, err := ui.archiver.ArchiveReport(row.Job.ID, row.Report.ID)
	if err != nil {
		log.Printf("Archive request for report %d failed: %v", row.Report.ID, err)
		ui.showNotification(IconError+" "+ui.localization.GetText(KeyArchiveFailed)+": "+err.Error(), false)
		return
	}

	log.Printf("Archive task %s started for report %d", task.ID, row.Report.ID)
	ui.showNotification(IconDownload+" "+row.DownloadFilename(), true)
}

// onExportUpdate handles archive task updates from the export service
func (ui *RootUI) onExportUpdate(task *model.ExportTask) {
	log.Printf("Export task update: id=%s status=%s file=%s error=%q",
		task.ID, task.Status, task.FilePath, task.LastError)

	switch task.Status {
	case model.ExportStatusCompleted:
		ui.sendExportNotification(task)
		fyne.Do(func() {
			ui.hideNotification()
			ui.showToastNotification(task)
			if ui.settings.GetAutoRevealExports() && task.FilePath != "" {
				log.Printf("Auto-revealing export %s", task.FilePath)
				ui.onRevealFile(task.FilePath)
			}
		})
	case model.ExportStatusFailed:
		fyne.Do(func() {
			ui.showNotification(IconError+" "+ui.localization.GetText(KeyArchiveFailed)+": "+task.LastError, false)
		})
	}
}

// sendExportNotification sends a system notification for a finished export
func (ui *RootUI) sendExportNotification(task *model.ExportTask) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyReportArchived),
		Content: model.ReportFilename(task.JobID, task.ReportID),
	})
}

// showToastNotification shows an in-app toast with actions for a finished
// export
func (ui *RootUI) showToastNotification(task *model.ExportTask) {
	titleLabel := widget.NewLabel(ui.localization.GetText(KeyReportArchived))
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(model.ReportFilename(task.JobID, task.ReportID))
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealButton := widget.NewButton("Reveal", func() {
		ui.onRevealFile(task.FilePath)
	})
	revealButton.Importance = widget.HighImportance

	openButton := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
		ui.onOpenFile(task.FilePath)
	})
	openButton.Importance = widget.MediumImportance

	var toastPopup *widget.PopUp
	closeButton := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeButton.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeButton)
	actions := container.NewHBox(revealButton, openButton)
	content := container.NewVBox(header, messageLabel, actions)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

	toastPopup.Resize(toastSize)
	toastPopup.Move(toastPos)
	toastPopup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			toastPopup.Hide()
		})
	}()
}

// onRevealFile reveals an archived file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	log.Printf("onRevealFile called for path: %s", filePath)

	if filePath == "" {
		widget.ShowPopUp(widget.NewLabel("Error: No file path provided"), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onOpenFile opens an archived file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	log.Printf("onOpenFile called for path: %s", filePath)

	if filePath == "" {
		widget.ShowPopUp(widget.NewLabel("Error: No file path provided"), ui.window.Canvas())
		return
	}

	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
	}
}

// onConfigureConsensus opens the consensus configuration dialog
func (ui *RootUI) onConfigureConsensus() {
	if ui.currentTaskID == 0 {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterTaskID), false)
		return
	}

	taskID := ui.currentTaskID
	form := NewConfigForm(ui.localization, func(config model.ConsensusConfiguration) error {
		return ui.api.ConfigureTask(context.Background(), taskID, config)
	})

	d := dialog.NewCustomConfirm(
		ui.localization.GetText(KeyConfigureConsensus),
		ui.localization.GetText(KeySave),
		ui.localization.GetText(KeyCancel),
		form.Form(),
		func(confirmed bool) {
			if !confirmed {
				form.ResetFields()
				return
			}
			go func() {
				if err := form.Submit(); err != nil {
					log.Printf("Consensus configuration submit failed: %v", err)
					fyne.Do(func() {
						ui.showNotification(IconError+" "+ui.localization.GetText(KeyConfigFailed)+": "+err.Error(), false)
					})
					return
				}
				log.Printf("Consensus configuration applied to task %d", taskID)
				fyne.Do(func() {
					ui.showNotification(ui.localization.GetText(KeyConfigApplied), false)
				})
			}()
		},
		ui.window,
	)
	d.Resize(fyne.NewSize(460, 240))
	d.Show()
}

// onShowConsensusSettings opens the consensus settings dialog for the loaded
// task
func (ui *RootUI) onShowConsensusSettings() {
	if ui.currentTaskID == 0 {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterTaskID), false)
		return
	}

	form := NewSettingsForm(ui.currentSettings, ui.api, ui.localization,
		func(canonical model.ConsensusSettings) {
			fyne.Do(func() {
				ui.currentSettings = &canonical
			})
		},
		func(message string) {
			fyne.Do(func() {
				ui.showNotification(message, false)
			})
		},
	)

	d := dialog.NewCustom(
		ui.localization.GetText(KeyConsensusSettings),
		ui.localization.GetText(KeyClose),
		form.Content(),
		ui.window,
	)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}

// onRequestMerge asks the server to merge the task's consensus replicas
func (ui *RootUI) onRequestMerge() {
	if ui.currentTaskID == 0 {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterTaskID), false)
		return
	}

	taskID := ui.currentTaskID
	dialog.ShowConfirm(
		ui.localization.GetText(KeyRequestMerge),
		ui.localization.GetText(KeyMergeConfirm),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ui.showNotification(ui.localization.GetText(KeyRequestMerge)+"...", true)
			go func() {
				if err := ui.api.CreateMerge(context.Background(), taskID); err != nil {
					log.Printf("Merge request for task %d failed: %v", taskID, err)
					fyne.Do(func() {
						ui.showNotification(IconError+" "+ui.localization.GetText(KeyMergeFailed)+": "+err.Error(), false)
					})
					return
				}
				log.Printf("Merge requested for task %d", taskID)
				fyne.Do(func() {
					ui.showNotification(ui.localization.GetText(KeyMergeRequested), false)
				})
			}()
		},
		ui.window,
	)
}

// onExportTable writes the visible table rows to an Excel workbook
func (ui *RootUI) onExportTable() {
	rows := ui.resultsTable.VisibleRows()
	if len(rows) == 0 {
		ui.showNotification(ui.localization.GetText(KeyNothingToExport), false)
		return
	}

	taskID := ui.currentTaskID
	ui.showNotification(ui.localization.GetText(KeyExportTable)+"...", true)
	go func() {
		path, err := ui.archiver.ExportTableXLSX(taskID, rows)
		if err != nil {
			log.Printf("Table export failed: %v", err)
			fyne.Do(func() {
				ui.showNotification(IconError+" "+ui.localization.GetText(KeyExportFailed)+": "+err.Error(), false)
			})
			return
		}

		log.Printf("Table exported to %s", path)
		fyne.Do(func() {
			ui.showNotification(ui.localization.GetText(KeyExportDone)+": "+path, false)
			if ui.settings.GetAutoRevealExports() {
				ui.onRevealFile(path)
			}
		})
	}()
}

// onShowExportHistory loads and shows the recent export history
func (ui *RootUI) onShowExportHistory() {
	go func() {
		entries, err := ui.archiver.RecentExports(export.DefaultRecentLimit)
		if err != nil {
			log.Printf("Loading export history failed: %v", err)
			fyne.Do(func() {
				ui.showNotification(IconError+" "+ui.localization.GetText(KeyExportHistory)+": "+err.Error(), false)
			})
			return
		}

		fyne.Do(func() {
			ui.showExportHistoryDialog(entries)
		})
	}()
}

// showExportHistoryDialog renders history entries as a tappable list
func (ui *RootUI) showExportHistoryDialog(entries []export.HistoryEntry) {
	if len(entries) == 0 {
		dialog.ShowInformation(ui.localization.GetText(KeyExportHistory), DashPlaceholder, ui.window)
		return
	}

	list := widget.NewList(
		func() int {
			return len(entries)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entry := entries[id]
			obj.(*widget.Label).SetText(entry.ExportedAt.Local().Format("2006-01-02 15:04") +
				MiddleDotSeparator + filepath.Base(entry.FilePath))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		ui.onRevealFile(entries[id].FilePath)
	}

	d := dialog.NewCustom(
		ui.localization.GetText(KeyExportHistory),
		ui.localization.GetText(KeyClose),
		list,
		ui.window,
	)
	d.Resize(fyne.NewSize(560, 380))
	d.Show()
}

// onShowSettings opens the application settings dialog
func (ui *RootUI) onShowSettings() {
	d := NewSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		if ui.onAPIConfigChanged != nil {
			ui.onAPIConfigChanged()
		}
	})
	d.Show()
}

// showNotification shows a message in the notification panel
func (ui *RootUI) showNotification(message string, withSpinner bool) {
	ui.notificationLabel.SetText(message)
	if withSpinner {
		ui.notificationSpinner.Show()
		ui.notificationSpinner.Start()
	} else {
		ui.notificationSpinner.Stop()
		ui.notificationSpinner.Hide()
	}
	ui.notificationPanel.Show()
	ui.content.Refresh()
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	ui.notificationSpinner.Stop()
	ui.notificationPanel.Hide()
	ui.content.Refresh()
}
