package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	hubstrings "integrationhub/pkg/platform/strings"
)

// Config is the full runtime configuration, grouped by concern.
type Config struct {
	Server    Server
	Providers Providers
	Redis     RedisConfig
	Postgres  PostgresConfig
	Kafka     KafkaConfig
	Breaker   BreakerConfig
	RateLimit RateLimitConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string
	LogFormat   string
	// APIKeys are accepted plain keys. APIKeyHashes are bcrypt hashes of
	// accepted keys. When both are empty any non-empty X-API-Key passes.
	APIKeys      []string
	APIKeyHashes []string
}

// IsDevelopment reports whether the server runs outside production.
func (s Server) IsDevelopment() bool {
	return s.Environment == "" || s.Environment == "development"
}

// Providers holds credentials and endpoints for every upstream vendor.
// An empty credential leaves the matching adapter unconfigured.
type Providers struct {
	FinanalyzPANURL string
	FinanalyzOCRURL string
	FinanalyzAPIKey string

	ZoopPANURL string
	ZoopGSTURL string
	ZoopAPIKey string
	ZoopAppID  string

	DigitapBaseURL      string
	DigitapClientID     string
	DigitapClientSecret string
	AadhaarRedirectURL  string

	VisionCredentialsFile string

	// OCROrder lists image-extraction adapters in the order they are tried.
	OCROrder []string
}

// RedisConfig configures the shared token store. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the transaction log database. An empty URL keeps
// the log in memory.
type PostgresConfig struct {
	URL           string
	MaxConns      int32
	RunMigrations bool
}

// KafkaConfig configures the transaction log stream. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// BreakerConfig tunes the per-provider circuit breakers.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	SuccessThreshold int
	Cooldown         time.Duration
}

// RateLimitConfig caps requests per caller within a sliding window. Zero
// Requests disables limiting.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DefaultOCROrder tries the document-OCR vendor first, then vision plus heuristics.
var DefaultOCROrder = []string{"FINANALYZ_OCR", "GOOGLE_VISION"}

// Load reads an optional .env file and then builds the configuration from the
// environment. Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() (Config, error) {
	redisCfg, err := redisFromEnv()
	if err != nil {
		return Config{}, err
	}
	breaker, err := breakerFromEnv()
	if err != nil {
		return Config{}, err
	}
	maxConns, err := intEnv("DB_MAX_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	rateRequests, err := intEnv("RATE_LIMIT_REQUESTS", 0)
	if err != nil {
		return Config{}, err
	}
	rateWindow, err := durationEnv("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return Config{}, err
	}

	port := getEnv("PORT", "3000")
	addr := getEnv("HUB_ADDR", ":"+port)

	return Config{
		Server: Server{
			Addr:         addr,
			Environment:  getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", ""),
			APIKeys:      listEnv("API_KEYS"),
			APIKeyHashes: listEnv("API_KEY_HASHES"),
		},
		Providers: Providers{
			FinanalyzPANURL:       os.Getenv("FINANALYZ_PAN_URL"),
			FinanalyzOCRURL:       os.Getenv("FINANALYZ_OCR_URL"),
			FinanalyzAPIKey:       os.Getenv("FINANALYZ_X_API_KEY"),
			ZoopPANURL:            os.Getenv("ZOOP_PAN_API_URL"),
			ZoopGSTURL:            os.Getenv("ZOOP_GST_API_URL"),
			ZoopAPIKey:            os.Getenv("ZOOP_API_KEY"),
			ZoopAppID:             os.Getenv("ZOOP_APP_ID"),
			DigitapBaseURL:        getEnv("DIGITAP_BASE_URL", "https://api.digitap.ai"),
			DigitapClientID:       os.Getenv("DIGITAP_CLIENT_ID"),
			DigitapClientSecret:   os.Getenv("DIGITAP_CLIENT_SECRET"),
			AadhaarRedirectURL:    os.Getenv("AADHAAR_REDIRECT_URL"),
			VisionCredentialsFile: os.Getenv("GCLOUD_KEY_FILE"),
			OCROrder:              ocrOrder(os.Getenv("OCR_PROVIDER_ORDER")),
		},
		Redis: redisCfg,
		Postgres: PostgresConfig{
			URL:           postgresURL(),
			MaxConns:      int32(maxConns),
			RunMigrations: getEnv("DB_MIGRATE", "true") == "true",
		},
		Kafka: KafkaConfig{
			Brokers: listEnv("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TRANSACTION_TOPIC", "api-transaction-logs"),
		},
		Breaker: breaker,
		RateLimit: RateLimitConfig{
			Requests: rateRequests,
			Window:   rateWindow,
		},
	}, nil
}

func redisFromEnv() (RedisConfig, error) {
	poolSize, err := intEnv("REDIS_POOL_SIZE", 10)
	if err != nil {
		return RedisConfig{}, err
	}
	minIdle, err := intEnv("REDIS_MIN_IDLE_CONNS", 2)
	if err != nil {
		return RedisConfig{}, err
	}
	dial, err := durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second)
	if err != nil {
		return RedisConfig{}, err
	}
	read, err := durationEnv("REDIS_READ_TIMEOUT", 3*time.Second)
	if err != nil {
		return RedisConfig{}, err
	}
	write, err := durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second)
	if err != nil {
		return RedisConfig{}, err
	}
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
		DialTimeout:  dial,
		ReadTimeout:  read,
		WriteTimeout: write,
	}, nil
}

func breakerFromEnv() (BreakerConfig, error) {
	failures, err := intEnv("BREAKER_FAILURE_THRESHOLD", 5)
	if err != nil {
		return BreakerConfig{}, err
	}
	successes, err := intEnv("BREAKER_SUCCESS_THRESHOLD", 2)
	if err != nil {
		return BreakerConfig{}, err
	}
	cooldown, err := durationEnv("BREAKER_COOLDOWN", 30*time.Second)
	if err != nil {
		return BreakerConfig{}, err
	}
	return BreakerConfig{
		Enabled:          getEnv("BREAKER_ENABLED", "false") == "true",
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Cooldown:         cooldown,
	}, nil
}

// postgresURL prefers DATABASE_URL and otherwise assembles one from the
// DB_* variables. Without DB_HOST the log stays in memory.
func postgresURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USERNAME", "postgres"),
		os.Getenv("DB_PASSWORD"),
		host,
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "integration_hub"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func ocrOrder(raw string) []string {
	order := hubstrings.SplitListUpper(raw)
	if len(order) == 0 {
		return append([]string(nil), DefaultOCROrder...)
	}
	return order
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func listEnv(key string) []string {
	return hubstrings.SplitList(os.Getenv(key))
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
