package ui

// Package ui provides user interface components

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyLoad               = "load"
	KeyReload             = "reload"
	KeyOpen               = "open"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyConsensus          = "consensus"
	KeyLanguage           = "language"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyClose              = "close"
	KeyBrowse             = "browse"
	KeyEnterTaskID        = "enter_task_id"
	KeyPleaseEnterTaskID  = "please_enter_task_id"
	KeyInvalidTaskID      = "invalid_task_id"
	KeyLoadingTask        = "loading_task"
	KeyTaskLoaded         = "task_loaded"
	KeyLoadFailed         = "load_failed"
	KeyConfigureConsensus = "configure_consensus"
	KeyConsensusSettings  = "consensus_settings"
	KeyRequestMerge       = "request_merge"
	KeyMergeConfirm       = "merge_confirm"
	KeyMergeRequested     = "merge_requested"
	KeyMergeFailed        = "merge_failed"
	KeyExportTable        = "export_table"
	KeyExportHistory      = "export_history"
	KeyExportDone         = "export_done"
	KeyExportFailed       = "export_failed"
	KeyNoSettings         = "no_settings"
	KeySettingsSaved      = "settings_saved"
	KeySaveFailed         = "save_failed"
	KeyConfigApplied      = "config_applied"
	KeyConfigFailed       = "config_failed"
	KeyReportArchived     = "report_archived"
	KeyArchiveFailed      = "archive_failed"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyNothingToExport    = "nothing_to_export"

	// Table headers
	KeyColumnJob       = "column_job"
	KeyColumnStage     = "column_stage"
	KeyColumnAssignee  = "column_assignee"
	KeyColumnConflicts = "column_conflicts"
	KeyColumnScore     = "column_score"
	KeyColumnDownload  = "column_download"

	// Form field labels
	KeyJobsPerSegment     = "jobs_per_segment"
	KeyAgreementThreshold = "agreement_threshold"
	KeyIoUThreshold       = "iou_threshold"
	KeySigma              = "sigma"
	KeyLineThickness      = "line_thickness"
	KeyQuorum             = "quorum"
	KeyServerURL          = "server_url"
	KeyAPIToken           = "api_token"
	KeyExportDirectory    = "export_directory"
	KeyRequestTimeout     = "request_timeout"
	KeyAutoReveal         = "auto_reveal"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "Consensus Review",
		KeyLoad:               "Load",
		KeyReload:             "Reload",
		KeyOpen:               "Open",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyConsensus:          "Consensus",
		KeyLanguage:           "Language",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyClose:              "Close",
		KeyBrowse:             "Browse",
		KeyEnterTaskID:        "Enter task ID",
		KeyPleaseEnterTaskID:  "Please enter a task ID",
		KeyInvalidTaskID:      "Invalid task ID",
		KeyLoadingTask:        "Loading task data...",
		KeyTaskLoaded:         "Task loaded",
		KeyLoadFailed:         "Failed to load task",
		KeyConfigureConsensus: "Configure Consensus",
		KeyConsensusSettings:  "Consensus Settings",
		KeyRequestMerge:       "Request Merge",
		KeyMergeConfirm:       "Merge consensus replicas of this task?",
		KeyMergeRequested:     "Consensus merge requested",
		KeyMergeFailed:        "Failed to request merge",
		KeyExportTable:        "Export to Excel",
		KeyExportHistory:      "Export History",
		KeyExportDone:         "Table exported",
		KeyExportFailed:       "Failed to export table",
		KeyNoSettings:         "No consensus settings available for this task",
		KeySettingsSaved:      "Settings saved successfully!",
		KeySaveFailed:         "Failed to save settings",
		KeyConfigApplied:      "Consensus configuration applied",
		KeyConfigFailed:       "Failed to apply configuration",
		KeyReportArchived:     "Report archived",
		KeyArchiveFailed:      "Failed to archive report",
		KeyErrorOpeningFile:   "Error opening file",
		KeyNothingToExport:    "Nothing to export",
		KeyColumnJob:          "Job",
		KeyColumnStage:        "Stage",
		KeyColumnAssignee:     "Assignee",
		KeyColumnConflicts:    "Conflicts",
		KeyColumnScore:        "Score",
		KeyColumnDownload:     "Download",
		KeyJobsPerSegment:     "Consensus Jobs Per Segment",
		KeyAgreementThreshold: "Agreement Score Threshold",
		KeyIoUThreshold:       "IoU Threshold (%)",
		KeySigma:              "Sigma (%)",
		KeyLineThickness:      "Line Thickness (%)",
		KeyQuorum:             "Quorum",
		KeyServerURL:          "Server URL",
		KeyAPIToken:           "API Token",
		KeyExportDirectory:    "Export Directory",
		KeyRequestTimeout:     "Request Timeout (seconds)",
		KeyAutoReveal:         "Reveal exports when finished",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Обзор консенсуса",
		KeyLoad:               "Загрузить",
		KeyReload:             "Обновить",
		KeyOpen:               "Открыть",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyConsensus:          "Консенсус",
		KeyLanguage:           "Язык",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyClose:              "Закрыть",
		KeyBrowse:             "Обзор",
		KeyEnterTaskID:        "Введите ID задачи",
		KeyPleaseEnterTaskID:  "Пожалуйста, введите ID задачи",
		KeyInvalidTaskID:      "Неверный ID задачи",
		KeyLoadingTask:        "Загрузка данных задачи...",
		KeyTaskLoaded:         "Задача загружена",
		KeyLoadFailed:         "Не удалось загрузить задачу",
		KeyConfigureConsensus: "Настроить консенсус",
		KeyConsensusSettings:  "Параметры консенсуса",
		KeyRequestMerge:       "Запросить слияние",
		KeyMergeConfirm:       "Объединить консенсус-копии этой задачи?",
		KeyMergeRequested:     "Запрошено слияние консенсуса",
		KeyMergeFailed:        "Не удалось запросить слияние",
		KeyExportTable:        "Экспорт в Excel",
		KeyExportHistory:      "История экспорта",
		KeyExportDone:         "Таблица экспортирована",
		KeyExportFailed:       "Не удалось экспортировать таблицу",
		KeyNoSettings:         "Для этой задачи нет параметров консенсуса",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeySaveFailed:         "Не удалось сохранить настройки",
		KeyConfigApplied:      "Конфигурация консенсуса применена",
		KeyConfigFailed:       "Не удалось применить конфигурацию",
		KeyReportArchived:     "Отчёт сохранён",
		KeyArchiveFailed:      "Не удалось сохранить отчёт",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyNothingToExport:    "Нечего экспортировать",
		KeyColumnJob:          "Задание",
		KeyColumnStage:        "Этап",
		KeyColumnAssignee:     "Исполнитель",
		KeyColumnConflicts:    "Конфликты",
		KeyColumnScore:        "Оценка",
		KeyColumnDownload:     "Скачать",
		KeyJobsPerSegment:     "Консенсус-заданий на сегмент",
		KeyAgreementThreshold: "Порог согласованности",
		KeyIoUThreshold:       "Порог IoU (%)",
		KeySigma:              "Сигма (%)",
		KeyLineThickness:      "Толщина линии (%)",
		KeyQuorum:             "Кворум",
		KeyServerURL:          "URL сервера",
		KeyAPIToken:           "API токен",
		KeyExportDirectory:    "Папка экспорта",
		KeyRequestTimeout:     "Тайм-аут запроса (сек.)",
		KeyAutoReveal:         "Показывать экспорт после завершения",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "Consensus Review",
		KeyLoad:               "Carregar",
		KeyReload:             "Recarregar",
		KeyOpen:               "Abrir",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyConsensus:          "Consenso",
		KeyLanguage:           "Idioma",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyClose:              "Fechar",
		KeyBrowse:             "Navegar",
		KeyEnterTaskID:        "Digite o ID da tarefa",
		KeyPleaseEnterTaskID:  "Por favor, digite um ID de tarefa",
		KeyInvalidTaskID:      "ID de tarefa inválido",
		KeyLoadingTask:        "Carregando dados da tarefa...",
		KeyTaskLoaded:         "Tarefa carregada",
		KeyLoadFailed:         "Falha ao carregar tarefa",
		KeyConfigureConsensus: "Configurar Consenso",
		KeyConsensusSettings:  "Parâmetros de Consenso",
		KeyRequestMerge:       "Solicitar Mesclagem",
		KeyMergeConfirm:       "Mesclar as réplicas de consenso desta tarefa?",
		KeyMergeRequested:     "Mesclagem de consenso solicitada",
		KeyMergeFailed:        "Falha ao solicitar mesclagem",
		KeyExportTable:        "Exportar para Excel",
		KeyExportHistory:      "Histórico de Exportação",
		KeyExportDone:         "Tabela exportada",
		KeyExportFailed:       "Falha ao exportar tabela",
		KeyNoSettings:         "Nenhum parâmetro de consenso disponível para esta tarefa",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeySaveFailed:         "Falha ao salvar configurações",
		KeyConfigApplied:      "Configuração de consenso aplicada",
		KeyConfigFailed:       "Falha ao aplicar configuração",
		KeyReportArchived:     "Relatório arquivado",
		KeyArchiveFailed:      "Falha ao arquivar relatório",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyNothingToExport:    "Nada para exportar",
		KeyColumnJob:          "Trabalho",
		KeyColumnStage:        "Etapa",
		KeyColumnAssignee:     "Responsável",
		KeyColumnConflicts:    "Conflitos",
		KeyColumnScore:        "Pontuação",
		KeyColumnDownload:     "Baixar",
		KeyJobsPerSegment:     "Trabalhos de Consenso por Segmento",
		KeyAgreementThreshold: "Limite de Concordância",
		KeyIoUThreshold:       "Limite de IoU (%)",
		KeySigma:              "Sigma (%)",
		KeyLineThickness:      "Espessura da Linha (%)",
		KeyQuorum:             "Quórum",
		KeyServerURL:          "URL do Servidor",
		KeyAPIToken:           "Token de API",
		KeyExportDirectory:    "Diretório de Exportação",
		KeyRequestTimeout:     "Tempo Limite de Requisição (s)",
		KeyAutoReveal:         "Revelar exportações ao concluir",
	}
}
