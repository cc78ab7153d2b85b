package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Limits   LimitConfig
	OAuth    OAuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	BaseDir   string
	URLSecret string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	EmbeddingProvider   string // "azure" or "openai"
	LLMProvider         string // "azure" or "ollama"
	AzureEndpoint       string
	AzureApiKey         string
	AzureEmbedDeploy    string
	AzureEmbedVersion   string
	AzureChatDeploy     string
	AzureChatVersion    string
	OpenAIApiKey        string
	OpenAIEmbedModel    string
	OllamaBaseURL       string
	OllamaModel         string
	EmbedBatchSize      int
	EmbedDocumentsTopic string
}

type LimitConfig struct {
	MaxFileSizeBytes   int64
	GuestMaxWorkspaces int64
	GuestMaxDocuments  int64
	ChunkTokens        int
	OverlapTokens      int
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			BaseDir:   getEnv("STORAGE_BASE_DIR", "uploads"),
			URLSecret: getEnv("STORAGE_URL_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "DocuChat"),
		},
		Ai: AIConfig{
			EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", "azure"),
			LLMProvider:         getEnv("LLM_PROVIDER", "azure"),
			AzureEndpoint:       getEnv("AZURE_OPENAI_ENDPOINT", ""),
			AzureApiKey:         getEnv("AZURE_OPENAI_API_KEY", ""),
			AzureEmbedDeploy:    getEnv("AZURE_OPENAI_EMBED_DEPLOYMENT", "text-embedding-3-small"),
			AzureEmbedVersion:   getEnv("AZURE_OPENAI_EMBED_API_VERSION", "2024-02-01"),
			AzureChatDeploy:     getEnv("AZURE_OPENAI_CHAT_DEPLOYMENT", "gpt-4o-mini"),
			AzureChatVersion:    getEnv("AZURE_OPENAI_CHAT_API_VERSION", "2024-02-01"),
			OpenAIApiKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIEmbedModel:    getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
			OllamaBaseURL:       getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:         getEnv("OLLAMA_MODEL", "llama3"),
			EmbedBatchSize:      getEnvAsInt("EMBED_BATCH_SIZE", 8),
			EmbedDocumentsTopic: getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT"),
		},
		Limits: LimitConfig{
			MaxFileSizeBytes:   int64(getEnvAsInt("MAX_FILE_SIZE_BYTES", 10*1024*1024)),
			GuestMaxWorkspaces: int64(getEnvAsInt("GUEST_MAX_WORKSPACES", 5)),
			GuestMaxDocuments:  int64(getEnvAsInt("GUEST_MAX_DOCUMENTS", 10)),
			ChunkTokens:        getEnvAsInt("CHUNK_TOKENS", 500),
			OverlapTokens:      getEnvAsInt("OVERLAP_TOKENS", 100),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
