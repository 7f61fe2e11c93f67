package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // Token lifetime

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration; loaded once at startup
// and injected, never read from ad hoc global state afterwards.
type Config struct {
	AppPort       string        // Application port
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name
	JWTSecret     string        // JWT signing key
	JWTTTL        time.Duration // Access token lifetime
	RedisAddr     string        // Redis server address
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	InitialCredit string        // Starting credit for new users, decimal string
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	initialCredit := os.Getenv("INITIAL_CREDIT")
	if initialCredit == "" {
		initialCredit = "1000000" // Default starting credit line
	}
	jwtTTLHours, err := strconv.Atoi(os.Getenv("JWT_TTL_HOURS"))
	if err != nil || jwtTTLHours <= 0 {
		jwtTTLHours = 24 // Default token lifetime
	}
	return &Config{
		AppPort:       os.Getenv("APP_PORT"),                     // Application port
		DBUser:        os.Getenv("DB_USER"),                      // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                  // Database password
		DBHost:        os.Getenv("DB_HOST"),                      // Database host
		DBPort:        os.Getenv("DB_PORT"),                      // Database port
		DBName:        os.Getenv("DB_NAME"),                      // Database name
		JWTSecret:     os.Getenv("JWT_SECRET"),                   // JWT signing key
		JWTTTL:        time.Duration(jwtTTLHours) * time.Hour,    // Access token lifetime
		RedisAddr:     os.Getenv("REDIS_ADDR"),                   // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                   // Redis password
		RedisDB:       redisDB,                                   // Redis database number
		InitialCredit: initialCredit,                             // Starting credit for new users
		IsProd:        os.Getenv("IS_PROD") == "true",            // Is production environment
	}
}
