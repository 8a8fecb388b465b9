package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	JWT  JWTConfig  `mapstructure:"jwt"`
	Auth AuthConfig `mapstructure:"auth"`
}

// JWTConfig holds the process-wide token signing configuration. Rotating the
// secret invalidates every outstanding token; there is no graceful rollover.
type JWTConfig struct {
	SecretKey     string        `mapstructure:"secretKey"`
	Issuer        string        `mapstructure:"issuer"`
	TokenLifetime time.Duration `mapstructure:"tokenLifetime"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcryptCost"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the checked-in file.
	v.SetEnvPrefix("BAKERY")
	v.AutomaticEnv()
	if err := v.BindEnv("jwt.secretKey", "JWT_SECRET_KEY"); err != nil {
		return Config{}, fmt.Errorf("failed to bind JWT secret env: %w", err)
	}
	if err := v.BindEnv("repositories.postgres.password", "POSTGRES_PASSWORD"); err != nil {
		return Config{}, fmt.Errorf("failed to bind postgres password env: %w", err)
	}

	// Try to load file-based config, fall back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if config.JWT.TokenLifetime <= 0 {
		config.JWT.TokenLifetime = 24 * time.Hour
	}

	return config, nil
}
