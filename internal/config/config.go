package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Env         string
	LogLevel    string
	HTTPAddr    string
	GRPCAddr    string
	PostgresDSN string
	AMQPURL     string
	JWTSecret   string
	JWTTTL      time.Duration
	AdminEmail  string
	ReportTZ    string
	CORSOrigins []string

	RestaurantName     string
	RestaurantAddress1 string
	RestaurantAddress2 string
	RestaurantPhone    string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	ttl, err := time.ParseDuration(getenv("JWT_TTL", "12h"))
	if err != nil {
		ttl = 12 * time.Hour
	}
	return Config{
		Env:         getenv("APP_ENV", "prod"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		GRPCAddr:    getenv("GRPC_ADDR", ":50051"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		AMQPURL:     os.Getenv("AMQP_URL"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:      ttl,
		AdminEmail:  getenv("ADMIN_EMAIL", "admin@gmail.com"),
		ReportTZ:    getenv("REPORT_TZ", "Local"),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "*"), ","),

		RestaurantName:     getenv("RESTAURANT_NAME", "My Restaurant"),
		RestaurantAddress1: getenv("RESTAURANT_ADDRESS1", "123 Main St"),
		RestaurantAddress2: getenv("RESTAURANT_ADDRESS2", "City, Country"),
		RestaurantPhone:    getenv("RESTAURANT_PHONE", "(000) 000-0000"),
	}
}

// Location resolves ReportTZ, falling back to the local zone.
func (c Config) Location() *time.Location {
	if c.ReportTZ == "" || c.ReportTZ == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ReportTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

// Log writes the effective settings without secrets.
func (c Config) Log(log *zap.Logger) {
	log.Info("config",
		zap.String("env", c.Env),
		zap.String("http_addr", c.HTTPAddr),
		zap.String("grpc_addr", c.GRPCAddr),
		zap.Bool("postgres", c.PostgresDSN != ""),
		zap.Bool("amqp", c.AMQPURL != ""),
		zap.String("report_tz", c.Location().String()),
		zap.String("admin_email", c.AdminEmail))
}

// NewLogger builds a console logger for APP_ENV=dev and a JSON logger otherwise.
func (c Config) NewLogger() (*zap.Logger, error) {
	var zc zap.Config
	if c.Env == "dev" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if lvl, err := zap.ParseAtomicLevel(c.LogLevel); err == nil {
		zc.Level = lvl
	}
	return zc.Build()
}
