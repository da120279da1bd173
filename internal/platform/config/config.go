package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ExtensionTTL     time.Duration
	ProblemTTL       time.Duration
	CatalogTTL       time.Duration
	CatalogRetention time.Duration

	CatalogRefreshInterval time.Duration
	CatalogLockKey         string
	CatalogLockTTL         time.Duration

	CodeforcesBaseURL string
	VJudgeBaseURL     string
	UpstreamTimeout   time.Duration

	DefaultMinDifficulty int
	DefaultMaxDifficulty int

	MigrationsDir string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:       getEnv("API_PORT", "8080"),
		JWTKey:        []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 7*24)) * time.Hour,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "algorithm_guessr"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		CacheBackend:  getEnv("CACHE_BACKEND", CacheBackendRedis),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		ExtensionTTL:     time.Duration(getEnvAsInt("EXTENSION_TTL_SECONDS", 300)) * time.Second,
		ProblemTTL:       time.Duration(getEnvAsInt("PROBLEM_TTL_SECONDS", 3600)) * time.Second,
		CatalogTTL:       time.Duration(getEnvAsInt("CATALOG_TTL_SECONDS", 3600)) * time.Second,
		CatalogRetention: time.Duration(getEnvAsInt("CATALOG_RETENTION_HOURS", 24)) * time.Hour,

		CatalogRefreshInterval: time.Duration(getEnvAsInt("CATALOG_REFRESH_MINUTES", 30)) * time.Minute,
		CatalogLockKey:         getEnv("CATALOG_LOCK_KEY", "cf:problemset:lock"),
		CatalogLockTTL:         time.Duration(getEnvAsInt("CATALOG_LOCK_TTL_SECONDS", 120)) * time.Second,

		CodeforcesBaseURL: getEnv("CODEFORCES_BASE_URL", "https://codeforces.com"),
		VJudgeBaseURL:     getEnv("VJUDGE_BASE_URL", "https://vjudge.net"),
		UpstreamTimeout:   time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 20)) * time.Second,

		DefaultMinDifficulty: getEnvAsInt("DEFAULT_MIN_DIFFICULTY", 800),
		DefaultMaxDifficulty: getEnvAsInt("DEFAULT_MAX_DIFFICULTY", 1600),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

// MigrationURL renders the connection settings in the postgres:// form golang-migrate expects.
func (c *Config) MigrationURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSslMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
