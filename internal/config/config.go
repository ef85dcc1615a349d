package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/snapgram/photo-service/internal/pkg/blobstore"
	"github.com/snapgram/photo-service/internal/pkg/database"
)

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds event publishing settings.
type KafkaConfig struct {
	Brokers []string
}

// ServiceConfig holds all configuration for the photo service.
type ServiceConfig struct {
	Port   string
	AppEnv string

	DBConfig    database.PostgresConfig
	JWTConfig   JWTConfig
	KafkaConfig KafkaConfig
	BlobConfig  blobstore.Config

	// HideOwnershipFailures makes owner-scoped operations report a
	// foreign photo as not found instead of forbidden, so non-owners
	// cannot probe which photos exist.
	HideOwnershipFailures bool

	MigrationsPath string
}

// Load reads configuration from the environment (PHOTO_* variables),
// with an optional .env file for local development.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PHOTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "photos")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("BLOB_DRIVER", "disk")
	v.SetDefault("BLOB_DIR", "./uploads")
	v.SetDefault("BLOB_BUCKET", "")
	v.SetDefault("HIDE_OWNERSHIP_FAILURES", true)
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	port := v.GetString("SERVICE_PORT")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:   port,
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		},
		BlobConfig: blobstore.Config{
			Driver: v.GetString("BLOB_DRIVER"),
			Dir:    v.GetString("BLOB_DIR"),
			Bucket: v.GetString("BLOB_BUCKET"),
		},
		HideOwnershipFailures: v.GetBool("HIDE_OWNERSHIP_FAILURES"),
		MigrationsPath:        v.GetString("MIGRATIONS_PATH"),
	}, nil
}
