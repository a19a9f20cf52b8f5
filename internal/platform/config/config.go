package config

import (
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
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

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Check-in window boundaries as offsets from local midnight. Strictly
	// after LateAfter a check-in is Late; strictly after CloseAfter it is
	// rejected.
	LateAfter  time.Duration
	CloseAfter time.Duration

	// Networks a check-in may originate from.
	AllowedNetworks []netip.Prefix

	AuthRatePerMin int

	AdminFullName string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "8080"),
		JWTKey:         []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:         time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "user"),
		DBPassword:     getEnv("DB_PASSWORD", "password"),
		DBName:         getEnv("DB_NAME", "staff_attendance_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		LateAfter:      getEnvAsClock("ATTENDANCE_LATE_AFTER", 7*time.Hour+30*time.Minute),
		CloseAfter:     getEnvAsClock("ATTENDANCE_CLOSE_AFTER", 8*time.Hour),
		AuthRatePerMin: getEnvAsInt("AUTH_RATE_PER_MIN", 30),
		AdminFullName:  getEnv("ADMIN_FULL_NAME", "System Admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@school.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "Admin@123"),
	}

	cfg.AllowedNetworks = getEnvAsNetworks("ALLOWED_NETWORKS", "127.0.0.1/32,::1/128")

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
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

// getEnvAsClock parses an "HH:MM:SS" wall-clock value into an offset from
// midnight.
func getEnvAsClock(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	t, err := time.Parse("15:04:05", valueStr)
	if err != nil {
		log.Printf("invalid clock value for %s (%q), using fallback", key, valueStr)
		return fallback
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func getEnvAsNetworks(key, fallback string) []netip.Prefix {
	valueStr := getEnv(key, fallback)
	var prefixes []netip.Prefix
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(part)
		if err != nil {
			log.Printf("invalid CIDR in %s (%q), skipping", key, part)
			continue
		}
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}
