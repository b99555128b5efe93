package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type DB struct {
	DbHOST     string `yaml:"host"`
	DbPORT     string `yaml:"port"`
	DbUSER     string `yaml:"user"`
	DbPASSWORD string `yaml:"password"`
	DbNAME     string `yaml:"name"`
	DbSSLMODE  string `yaml:"sslmode"`
}

type MinIO struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	BucketName string `yaml:"bucket_name"`
	UseSSL     bool   `yaml:"use_ssl"`
	Region     string `yaml:"region"`
}

type Config struct {
	ServerPort     int           `yaml:"server_port"`
	StorageDriver  string        `yaml:"storage_driver"`
	MigrationsPath string        `yaml:"migrations_path"`
	DB             DB            `yaml:"db"`
	MinIO          MinIO         `yaml:"minio"`
	JWTSecretKey   string        `yaml:"jwt_secret_key"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	MaxUploadSize  int64         `yaml:"max_upload_size"`
	TrendingLimit  int           `yaml:"trending_limit"`
}

func Default() *Config {
	return &Config{
		ServerPort:     8080,
		StorageDriver:  DriverMemory,
		MigrationsPath: "migrations/001_create_tables.sql",
		DB: DB{
			DbHOST:     "localhost",
			DbPORT:     "5432",
			DbUSER:     "postgres",
			DbPASSWORD: "password",
			DbNAME:     "socialfeed",
			DbSSLMODE:  "disable",
		},
		MinIO: MinIO{
			AccessKey:  "minioadmin",
			SecretKey:  "minioadmin",
			BucketName: "media",
			Region:     "us-east-1",
		},
		TokenDuration: 2 * time.Hour,
		MaxUploadSize: 50 * 1024 * 1024,
		TrendingLimit: 50,
	}
}

// LoadFile overlays the YAML file at path on top of cfg.
func LoadFile(path string, cfg *Config) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка при чтении файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("ошибка при разборе файла конфигурации: %w", err)
	}

	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func loadDB(base DB) DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", base.DbHOST),
		DbPORT:     getEnv("DB_PORT", base.DbPORT),
		DbUSER:     getEnv("DB_USER", base.DbUSER),
		DbPASSWORD: getEnv("DB_PASSWORD", base.DbPASSWORD),
		DbNAME:     getEnv("DB_NAME", base.DbNAME),
		DbSSLMODE:  getEnv("DB_SSLMODE", base.DbSSLMODE),
	}
}

func loadMinIO(base MinIO) MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", base.Endpoint),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", base.AccessKey),
		SecretKey:  getEnv("MINIO_SECRET_KEY", base.SecretKey),
		BucketName: getEnv("MINIO_BUCKET_NAME", base.BucketName),
		UseSSL:     getEnvBool("MINIO_USE_SSL", base.UseSSL),
		Region:     getEnv("MINIO_REGION", base.Region),
	}
}

// LoadConfig builds the configuration from defaults, the optional
// CONFIG_FILE and the environment, in that order of precedence.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	base := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, base); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	return &Config{
		ServerPort:     getEnvAsInt("SERVER_PORT", base.ServerPort),
		StorageDriver:  getEnv("STORAGE_DRIVER", base.StorageDriver),
		MigrationsPath: getEnv("MIGRATIONS_PATH", base.MigrationsPath),
		DB:             loadDB(base.DB),
		MinIO:          loadMinIO(base.MinIO),
		JWTSecretKey:   getEnv("JWT_SECRET_KEY", base.JWTSecretKey),
		TokenDuration:  getEnvDuration("TOKEN_DURATION", base.TokenDuration),
		MaxUploadSize:  getEnvAsInt64("MAX_UPLOAD_SIZE", base.MaxUploadSize),
		TrendingLimit:  getEnvAsInt("TRENDING_LIMIT", base.TrendingLimit),
	}
}
