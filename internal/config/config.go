package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	LogLevel                       logging.Level
	InternalJobToken               string
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	BetterStackEnabled             bool
	BetterStackEndpoint            string
	BetterStackToken               string
	BetterStackTimeout             time.Duration
	BetterStackMinLevel            logging.Level
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	AllSportsEnabled               bool
	AllSportsBaseURL               string
	AllSportsToken                 string
	AllSportsTimeout               time.Duration
	AllSportsMaxRetries            int
	AllSportsCircuitEnabled        bool
	AllSportsCircuitFailureCount   int
	AllSportsCircuitOpenTimeout    time.Duration
	AllSportsCircuitHalfOpenMaxReq int
	SchedulerEnabled               bool
	JobFixtureSyncInterval         time.Duration
	JobIngestInterval              time.Duration
	JobScoreInterval               time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	allSportsEnabled, err := strconv.ParseBool(getEnv("ALLSPORTS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_ENABLED: %w", err)
	}
	allSportsToken := strings.TrimSpace(getEnv("ALLSPORTS_TOKEN", ""))
	if allSportsEnabled && allSportsToken == "" {
		return Config{}, fmt.Errorf("ALLSPORTS_TOKEN is required when ALLSPORTS_ENABLED=true")
	}
	allSportsTimeout, err := time.ParseDuration(getEnv("ALLSPORTS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_TIMEOUT: %w", err)
	}
	if allSportsTimeout <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_TIMEOUT must be > 0")
	}
	allSportsMaxRetries, err := getEnvAsInt("ALLSPORTS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_MAX_RETRIES: %w", err)
	}
	if allSportsMaxRetries < 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_MAX_RETRIES must be >= 0")
	}
	allSportsCircuitEnabled, err := strconv.ParseBool(getEnv("ALLSPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_ENABLED: %w", err)
	}
	allSportsCircuitFailureCount, err := getEnvAsInt("ALLSPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if allSportsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	allSportsCircuitOpenTimeout, err := time.ParseDuration(getEnv("ALLSPORTS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if allSportsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	allSportsCircuitHalfOpenMaxReq, err := getEnvAsInt("ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if allSportsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("ALLSPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	schedulerEnabled, err := strconv.ParseBool(getEnv("SCHEDULER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULER_ENABLED: %w", err)
	}
	jobFixtureSyncInterval, err := time.ParseDuration(getEnv("JOB_FIXTURE_SYNC_INTERVAL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_FIXTURE_SYNC_INTERVAL: %w", err)
	}
	if jobFixtureSyncInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_FIXTURE_SYNC_INTERVAL must be > 0")
	}
	jobIngestInterval, err := time.ParseDuration(getEnv("JOB_INGEST_INTERVAL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_INGEST_INTERVAL: %w", err)
	}
	if jobIngestInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_INGEST_INTERVAL must be > 0")
	}
	jobScoreInterval, err := time.ParseDuration(getEnv("JOB_SCORE_INTERVAL", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_SCORE_INTERVAL: %w", err)
	}
	if jobScoreInterval <= 0 {
		return Config{}, fmt.Errorf("JOB_SCORE_INTERVAL must be > 0")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "fantasy-ligue-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CacheTTL:                       cacheTTL,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		InternalJobToken:               strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		BetterStackEnabled:             betterStackEnabled,
		BetterStackEndpoint:            betterStackEndpoint,
		BetterStackToken:               strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:             betterStackTimeout,
		BetterStackMinLevel:            parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		AllSportsEnabled:               allSportsEnabled,
		AllSportsBaseURL:               strings.TrimSpace(getEnv("ALLSPORTS_BASE_URL", "https://apiv2.allsportsapi.com/football")),
		AllSportsToken:                 allSportsToken,
		AllSportsTimeout:               allSportsTimeout,
		AllSportsMaxRetries:            allSportsMaxRetries,
		AllSportsCircuitEnabled:        allSportsCircuitEnabled,
		AllSportsCircuitFailureCount:   allSportsCircuitFailureCount,
		AllSportsCircuitOpenTimeout:    allSportsCircuitOpenTimeout,
		AllSportsCircuitHalfOpenMaxReq: allSportsCircuitHalfOpenMaxReq,
		SchedulerEnabled:               schedulerEnabled,
		JobFixtureSyncInterval:         jobFixtureSyncInterval,
		JobIngestInterval:              jobIngestInterval,
		JobScoreInterval:               jobScoreInterval,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
