package config

const (
	defaultDataDir                = "~/.local/share/sciwatch"
	defaultLogDir                 = "~/.local/share/sciwatch/logs"
	defaultTimelineFile           = "topic_timeline.json"
	defaultSummaryDBFile          = "summaries.db"
	defaultBulkCatalogFile        = "nasem_catalog.json"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultParallelism            = 4
	defaultCrossChannelWindowDays = 7
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMReferer             = "https://github.com/sciwatch/sciwatch"
	defaultLLMTitle               = "Sciwatch Relevance Oracle"
	defaultLLMTimeoutSeconds      = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			EscalationEnabled:      true,
			Parallelism:            defaultParallelism,
			CrossChannelWindowDays: defaultCrossChannelWindowDays,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
