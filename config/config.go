package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
	Webhook    WebhookConfig

	// Channels
	Telegram TelegramConfig

	// Collaborators
	Memos          MemosConfig
	Qdrant         QdrantConfig
	Voyage         VoyageConfig
	GoogleCalendar GoogleCalendarConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Assistant core
	Classifier   ClassifierConfig
	Session      SessionConfig
	Retrieval    RetrievalConfig
	Materialize  MaterializeConfig
	Orchestrator OrchestratorConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port          int
	Mode          string
	MaxUploadSize int64
	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	Enabled   bool
	PerMinute int
}

// TelegramConfig enables the Telegram channel when BotToken is set.
type TelegramConfig struct {
	BotToken         string
	WebhookURL       string
	SecretToken      string
	DefaultProjectID string
}

// WebhookConfig secures the item store change notifications.
type WebhookConfig struct {
	Enabled    bool
	Secret     string
	AllowedIPs []string
}

type MemosConfig struct {
	URL         string
	APIVersion  string
	AccessToken string
	ExternalURL string // URL for generating user-facing links (e.g., http://localhost:5230)
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

type GoogleCalendarConfig struct {
	Enabled         bool
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxRetryDelay   string           `yaml:"max_retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name      string `yaml:"name"`
	Enabled   bool   `yaml:"enabled"`
	Priority  int    `yaml:"priority"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Model     string `yaml:"model"`
	Timeout   string `yaml:"timeout"`
	MaxTokens int    `yaml:"max_tokens"`
}

// ClassifierConfig holds the confidence thresholds used by the dispatcher.
// IntentOverrides is keyed by intent name and replaces the defaults for that intent only.
type ClassifierConfig struct {
	ConfirmThreshold float64
	AutoThreshold    float64
	IntentOverrides  map[string]ThresholdConfig
}

type ThresholdConfig struct {
	Confirm float64
	Auto    float64
}

type SessionConfig struct {
	TTL              string
	MaxConversations int
}

type RetrievalConfig struct {
	Enabled   bool
	Threshold float64
	TopK      int
	MaxChars  int
	Timeout   string
}

type MaterializeConfig struct {
	Concurrency int
}

type OrchestratorConfig struct {
	SmartAnalysisEnabled bool
	Timezone             string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.MaxUploadSize = viper.GetInt64("http_server.max_upload_size")
	cfg.HTTPServer.TrustedProxies = viper.GetStringSlice("http_server.trusted_proxies")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.PerMinute = viper.GetInt("rate_limit.per_minute")
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = expandEnvVar(viper.GetString("webhook.secret"))
	cfg.Webhook.AllowedIPs = viper.GetStringSlice("webhook.allowed_ips")
	if secret := viper.GetString("webhook_secret"); secret != "" {
		cfg.Webhook.Secret = secret
	}

	// Telegram
	cfg.Telegram.BotToken = expandEnvVar(viper.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = expandEnvVar(viper.GetString("telegram.secret_token"))
	cfg.Telegram.DefaultProjectID = viper.GetString("telegram.default_project_id")
	if token := viper.GetString("telegram_bot_token"); token != "" {
		cfg.Telegram.BotToken = token
	}

	// Item store
	cfg.Memos.URL = viper.GetString("memos.url")
	cfg.Memos.APIVersion = viper.GetString("memos.api_version")
	cfg.Memos.AccessToken = viper.GetString("memos.access_token")
	cfg.Memos.ExternalURL = viper.GetString("memos.external_url")
	if memosURL := viper.GetString("memos_url"); memosURL != "" {
		cfg.Memos.URL = memosURL
	}
	if memosToken := viper.GetString("memos_access_token"); memosToken != "" {
		cfg.Memos.AccessToken = memosToken
	}
	if cfg.Memos.ExternalURL == "" {
		cfg.Memos.ExternalURL = cfg.Memos.URL
	}

	// Knowledge store
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.APIKey = expandEnvVar(viper.GetString("qdrant.api_key"))
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Voyage.APIKey = expandEnvVar(viper.GetString("voyage.api_key"))
	cfg.Voyage.Model = viper.GetString("voyage.model")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	cfg.GoogleCalendar.Enabled = viper.GetBool("google_calendar.enabled")
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxRetryDelay = viper.GetString("llm.max_retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:      getStringFromMap(providerMap, "name"),
						Enabled:   getBoolFromMap(providerMap, "enabled"),
						Priority:  getIntFromMap(providerMap, "priority"),
						APIKey:    expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:   getStringFromMap(providerMap, "base_url"),
						Model:     getStringFromMap(providerMap, "model"),
						Timeout:   getStringFromMap(providerMap, "timeout"),
						MaxTokens: getIntFromMap(providerMap, "max_tokens"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// An empty provider list is allowed here; the provider manager reports it
	// as a configuration error on first use without touching the network.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	// Assistant core
	cfg.Classifier.ConfirmThreshold = viper.GetFloat64("classifier.confirm_threshold")
	cfg.Classifier.AutoThreshold = viper.GetFloat64("classifier.auto_threshold")
	cfg.Classifier.IntentOverrides = loadThresholdOverrides()
	if err := validateThresholds(cfg.Classifier); err != nil {
		return nil, err
	}

	cfg.Session.TTL = viper.GetString("session.ttl")
	cfg.Session.MaxConversations = viper.GetInt("session.max_conversations")

	cfg.Retrieval.Enabled = viper.GetBool("retrieval.enabled")
	cfg.Retrieval.Threshold = viper.GetFloat64("retrieval.threshold")
	cfg.Retrieval.TopK = viper.GetInt("retrieval.top_k")
	cfg.Retrieval.MaxChars = viper.GetInt("retrieval.max_chars")
	cfg.Retrieval.Timeout = viper.GetString("retrieval.timeout")

	cfg.Materialize.Concurrency = viper.GetInt("materialize.concurrency")

	cfg.Orchestrator.SmartAnalysisEnabled = viper.GetBool("orchestrator.smart_analysis_enabled")
	cfg.Orchestrator.Timezone = viper.GetString("orchestrator.timezone")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.max_upload_size", 20<<20)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.per_minute", 30)
	viper.SetDefault("webhook.enabled", false)
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("memos.api_version", "v1")
	viper.SetDefault("qdrant.collection_name", "project_knowledge")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("voyage.model", "voyage-3")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_retry_delay", "8s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	viper.SetDefault("classifier.confirm_threshold", 0.60)
	viper.SetDefault("classifier.auto_threshold", 0.85)

	viper.SetDefault("session.ttl", "30m")
	viper.SetDefault("session.max_conversations", 1000)

	viper.SetDefault("retrieval.enabled", true)
	viper.SetDefault("retrieval.threshold", 0.5)
	viper.SetDefault("retrieval.top_k", 3)
	viper.SetDefault("retrieval.max_chars", 500)
	viper.SetDefault("retrieval.timeout", "5s")

	viper.SetDefault("materialize.concurrency", 4)

	viper.SetDefault("orchestrator.smart_analysis_enabled", true)
	viper.SetDefault("orchestrator.timezone", "Asia/Taipei")
}

// loadThresholdOverrides reads classifier.intent_overrides, a map of
// intent name -> {confirm, auto}.
func loadThresholdOverrides() map[string]ThresholdConfig {
	raw := viper.GetStringMap("classifier.intent_overrides")
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]ThresholdConfig, len(raw))
	for intent, v := range raw {
		m, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		out[intent] = ThresholdConfig{
			Confirm: getFloatFromMap(m, "confirm"),
			Auto:    getFloatFromMap(m, "auto"),
		}
	}
	return out
}

func validateThresholds(cfg ClassifierConfig) error {
	check := func(name string, confirm, auto float64) error {
		if confirm < 0 || auto > 1 || confirm > auto {
			return fmt.Errorf("classifier %s: thresholds must satisfy 0 <= confirm <= auto <= 1 (got %.2f/%.2f)", name, confirm, auto)
		}
		return nil
	}
	if err := check("default", cfg.ConfirmThreshold, cfg.AutoThreshold); err != nil {
		return err
	}
	for intent, t := range cfg.IntentOverrides {
		if err := check(intent, t.Confirm, t.Auto); err != nil {
			return err
		}
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		// Unresolved placeholders count as "no credentials".
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

func getFloatFromMap(m map[string]interface{}, key string) float64 {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}
