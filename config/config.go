package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Cashfree CashfreeConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	AppEnv      string
	HTTPPort    string
	AdminAPIKey string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type CashfreeConfig struct {
	BaseURL   string
	AppID     string
	SecretKey string
	Mode      string // sandbox or production
	ReturnURL string
}

type WhatsAppConfig struct {
	BaseURL              string
	APIVersion           string
	PhoneNumberID        string
	AccessToken          string
	ConfirmationTemplate string
	TemplateLanguage     string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "development"),
			HTTPPort:    strings.TrimPrefix(getEnv("HTTP_PORT", "8080"), ":"),
			AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "woodora"),
			Password:        getEnv("POSTGRES_PASSWORD", "woodora"),
			DBName:          getEnv("POSTGRES_DB", "woodora_store"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_ORDERS", "orders.events"),
			GroupID: getEnv("KAFKA_GROUP_INVENTORY", "inventory"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		Cashfree: CashfreeConfig{
			BaseURL:   getEnv("CASHFREE_BASE_URL", "https://sandbox.cashfree.com"),
			AppID:     getEnv("CASHFREE_APP_ID", ""),
			SecretKey: getEnv("CASHFREE_SECRET_KEY", ""),
			Mode:      getEnv("CASHFREE_MODE", "sandbox"),
			ReturnURL: getEnv("CASHFREE_RETURN_URL", "https://woodora.in/order-confirmation?order_id={order_id}"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:              getEnv("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:           getEnv("WHATSAPP_API_VERSION", "v19.0"),
			PhoneNumberID:        getEnv("WHATSAPP_PHONE_NUMBER_ID", ""),
			AccessToken:          getEnv("WHATSAPP_ACCESS_TOKEN", ""),
			ConfirmationTemplate: getEnv("WHATSAPP_CONFIRMATION_TEMPLATE", "order_confirmation"),
			TemplateLanguage:     getEnv("WHATSAPP_TEMPLATE_LANGUAGE", "en"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
