package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	MetricsSync MetricsSync `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
}

type App struct {
	LogLevel     string `mapstructure:"log_level"`
	DashboardURL string `mapstructure:"dashboard_url"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL                  string `mapstructure:"meta_base_url"`
	URL                      string `mapstructure:"-"`
	Version                  string `mapstructure:"meta_version"`
	AccessToken              string `mapstructure:"meta_access_token"`
	RequestDelayMillis       int    `mapstructure:"meta_request_delay_ms"`
	RequestTimeoutSeconds    int    `mapstructure:"meta_request_timeout_seconds"`
	MaxAttempts              int    `mapstructure:"meta_max_attempts"`
	DefaultRetryAfterSeconds int    `mapstructure:"meta_default_retry_after_seconds"`
	LookbackDays             int    `mapstructure:"meta_lookback_days"`
}

type Auth struct {
	Secret               string `mapstructure:"auth_secret"`
	OperatorUser         string `mapstructure:"auth_operator_user"`
	OperatorPasswordHash string `mapstructure:"auth_operator_password_hash"`
	TokenTTLHours        int    `mapstructure:"auth_token_ttl_hours"`
}

type MetricsSync struct {
	CronSchedule string `mapstructure:"metrics_sync_cron"`
	Enabled      bool   `mapstructure:"metrics_sync_enabled"`
	BatchSize    int    `mapstructure:"metrics_sync_batch_size"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaign_metrics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v21.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_REQUEST_DELAY_MS", 100)           // intervalo mínimo entre requisições
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)     // timeout por requisição
	viper.SetDefault("META_MAX_ATTEMPTS", 3)                 // tentativas para erros não-429
	viper.SetDefault("META_DEFAULT_RETRY_AFTER_SECONDS", 60) // quando o 429 vem sem Retry-After
	viper.SetDefault("META_LOOKBACK_DAYS", 30)               // janela padrão de insights

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATOR_USER", "admin")
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "") // vazio desabilita o login
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("METRICS_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("METRICS_SYNC_ENABLED", false)
	viper.SetDefault("METRICS_SYNC_BATCH_SIZE", 50)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DASHBOARD_URL", "https://dashboard.example.com/c/")
	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate confere o que é obrigatório para uma sincronização
func (c *Config) Validate() error {
	if c.Meta.AccessToken == "" {
		return fmt.Errorf("META_ACCESS_TOKEN não configurado")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL não configurado")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
