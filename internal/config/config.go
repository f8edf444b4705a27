package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Office   OfficeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// OfficeConfig holds the deployment constants for attendance evaluation:
// the office geofence and the late-arrival cutoffs expressed in minutes
// since midnight in the office timezone.
type OfficeConfig struct {
	Latitude             float64
	Longitude            float64
	GeofenceRadiusMeters float64
	LateCutoffMinutes    int
	FullDayCutoffMinutes int
	Timezone             string
}

func Load() (*Config, error) {
	// Missing .env is fine in containerized deployments; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrledger"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Office geofence and late policy
	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "12.910490"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLng, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "77.635276"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("OFFICE_GEOFENCE_RADIUS_METERS", "200"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_GEOFENCE_RADIUS_METERS: %w", err)
	}
	lateCutoff, err := strconv.Atoi(getEnv("OFFICE_LATE_CUTOFF_MINUTES", "630"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LATE_CUTOFF_MINUTES: %w", err)
	}
	fullDayCutoff, err := strconv.Atoi(getEnv("OFFICE_FULL_DAY_CUTOFF_MINUTES", "750"))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_FULL_DAY_CUTOFF_MINUTES: %w", err)
	}

	config.Office = OfficeConfig{
		Latitude:             officeLat,
		Longitude:            officeLng,
		GeofenceRadiusMeters: radius,
		LateCutoffMinutes:    lateCutoff,
		FullDayCutoffMinutes: fullDayCutoff,
		Timezone:             getEnv("OFFICE_TIMEZONE", "Asia/Kolkata"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Office.GeofenceRadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_GEOFENCE_RADIUS_METERS must be positive")
	}
	if c.Office.LateCutoffMinutes >= c.Office.FullDayCutoffMinutes {
		return fmt.Errorf("OFFICE_LATE_CUTOFF_MINUTES must be below OFFICE_FULL_DAY_CUTOFF_MINUTES")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
