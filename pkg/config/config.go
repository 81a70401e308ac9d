package config

import (
	"strings"

	"github.com/doduclong204/vietvibe/pkg/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
}

type AuthConfig struct {
	AccessSecret      string `mapstructure:"access_secret"`
	RefreshSecret     string `mapstructure:"refresh_secret"`
	AccessTTLSeconds  int64  `mapstructure:"access_ttl_seconds"`
	RefreshTTLSeconds int64  `mapstructure:"refresh_ttl_seconds"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	Format    string `mapstructure:"format"`
	GormLevel string `mapstructure:"gorm_level"`
}

// TelegramConfig configures the optional best-score notifier. The
// notifier is disabled when Token is empty.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

var AppConfig Config

func LoadConfig(filename string) error {
	v := viper.New()
	v.SetConfigFile(filename)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("auth.access_ttl_seconds", 3600)
	v.SetDefault("auth.refresh_ttl_seconds", 86400)

	v.SetEnvPrefix("VIETVIBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Error("failed to read config file", "file", filename, "error", err)
		return err
	}
	if err := v.Unmarshal(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "file", filename, "error", err)
		return err
	}
	return nil
}
