package config

import (
	"strings"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/spf13/viper"
)

const (
	SessionTransportCookie = "cookie"
	SessionTransportHeader = "header"

	defaultSessionTTLHours = 7 * 24
	minSessionSecretLength = 32

	defaultCorsAllowOrigins = "http://localhost:3000"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	SessionSecret        string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours      int    `mapstructure:"SESSION_TTL_HOURS"`
	SessionTransport     string `mapstructure:"SESSION_TRANSPORT"`
	SessionCookieSecure  bool   `mapstructure:"SESSION_COOKIE_SECURE"`
	BcryptCost           int    `mapstructure:"BCRYPT_COST"`
	AdminEmail           string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword        string `mapstructure:"ADMIN_PASSWORD"`
}

var ConfigInstance Config

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS",
		"SESSION_SECRET", "SESSION_TTL_HOURS", "SESSION_TRANSPORT", "SESSION_COOKIE_SECURE",
		"BCRYPT_COST", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetDefault("SESSION_TTL_HOURS", defaultSessionTTLHours)
	viper.SetDefault("SESSION_TRANSPORT", SessionTransportCookie)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("ENVIRONMENT", "production")
	viper.SetDefault("CORS_ALLOW_ORIGINS", defaultCorsAllowOrigins)

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"sessionTransport", config.SessionTransport,
	)

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}

	return ConfigInstance, nil
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if len(config.SessionSecret) < minSessionSecretLength {
		return log.Error(
			"Fatal error: SESSION_SECRET must be at least 32 characters",
			"length", len(config.SessionSecret),
		)
	}

	if config.SessionTTLHours <= 0 {
		return log.Error(
			"Fatal error: invalid session ttl",
			"hours", config.SessionTTLHours,
		)
	}

	switch config.SessionTransport {
	case SessionTransportCookie, SessionTransportHeader:
	default:
		return log.Error(
			"Fatal error: SESSION_TRANSPORT must be cookie or header",
			"transport", config.SessionTransport,
		)
	}

	// Credentialed CORS cannot be combined with a wildcard origin.
	if config.CorsAllowOrigins == "" || strings.Contains(config.CorsAllowOrigins, "*") {
		return log.Error(
			"Fatal error: CORS_ALLOW_ORIGINS must list explicit origins",
			"origins", config.CorsAllowOrigins,
		)
	}

	if config.DatabaseCacheAddress != "" && config.DatabaseCachePort == 0 {
		return log.ErrMsg("Fatal error: DB_CACHE_PORT required when DB_CACHE_ADDRESS is set")
	}

	if (config.AdminEmail == "") != (config.AdminPassword == "") {
		return log.ErrMsg("Fatal error: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	ConfigInstance = config
	return nil
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
