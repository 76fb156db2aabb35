package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr     string
		BasePath string
	}
	Database struct {
		Driver string
		DSN    string
	}
	Log struct {
		Level string
	}
	CORS struct {
		Origins []string
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables use the ANNONCES_ prefix, e.g. ANNONCES_DATABASE_DSN.
func Load() (Config, error) {
	// real environment wins over .env
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ANNONCES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("server.basepath", "")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/annonces.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.origins", []string{"*"})

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
