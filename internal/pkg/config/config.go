package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/piresc/darsyar/internal/pkg/models"
	"github.com/spf13/viper"
)

// ErrMissingJWTSecret is returned when no signing secret is configured
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// InitConfig loads configuration from an optional env file and the process
// environment. Environment variables always win over the file.
func InitConfig(configPath string) (*models.Config, error) {
	configs := loadConfig(newViper(configPath))
	if err := validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// InitWorkerConfig loads configuration for the SMS worker, which never
// touches tokens or the code store
func InitWorkerConfig(configPath string) (*models.Config, error) {
	configs := loadConfig(newViper(configPath))
	if configs.NSQ.Address == "" && len(configs.NSQ.LookupdAddress) == 0 {
		return nil, fmt.Errorf("NSQ_ADDRESS or NSQ_LOOKUPD_ADDRESS is required")
	}
	return configs, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "darsyar-auth")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("APP_VERSION", "development")

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", 5000)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_DRIVER", "pgx")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NSQ_ADDRESS", "localhost:4150")
	v.SetDefault("NSQ_LOOKUPD_ADDRESS", "")

	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_STORE", "postgres")
	v.SetDefault("OTP_DISPATCH", "log")

	v.SetDefault("SMS_API_URL", "https://api.mobizon.kz/service/message/sendsmsmessage")
	v.SetDefault("SMS_DRY_RUN", true)
	v.SetDefault("SMS_TIMEOUT", "10s")
	v.SetDefault("SMS_TEMPLATE", "Your verification code is %s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")

	v.SetDefault("NEW_RELIC_ENABLED", false)
	v.SetDefault("NEW_RELIC_FORWARD_LOGS", false)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NSQ config
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")
	configs.NSQ.LookupdAddress = splitList(v.GetString("NSQ_LOOKUPD_ADDRESS"))

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")

	// OTP config
	configs.OTP.TTL = v.GetDuration("OTP_TTL")
	configs.OTP.Store = strings.ToLower(v.GetString("OTP_STORE"))
	configs.OTP.Dispatch = strings.ToLower(v.GetString("OTP_DISPATCH"))

	// SMS provider config
	configs.SMS.APIURL = v.GetString("SMS_API_URL")
	configs.SMS.APIKey = v.GetString("SMS_API_KEY")
	configs.SMS.SenderID = v.GetString("SMS_SENDER_ID")
	configs.SMS.DryRun = v.GetBool("SMS_DRY_RUN")
	configs.SMS.Timeout = v.GetDuration("SMS_TIMEOUT")
	configs.SMS.Template = v.GetString("SMS_TEMPLATE")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	// NewRelic config
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	return configs
}

func validate(configs *models.Config) error {
	if configs.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if configs.OTP.TTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive")
	}
	switch configs.OTP.Store {
	case "postgres", "redis":
	default:
		return fmt.Errorf("unsupported OTP_STORE %q", configs.OTP.Store)
	}
	switch configs.OTP.Dispatch {
	case "nsq", "log":
	default:
		return fmt.Errorf("unsupported OTP_DISPATCH %q", configs.OTP.Dispatch)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
