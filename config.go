package main

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads configs/config.yaml and lets environment variables
// override any key (SERVER_PORT, DB_DRIVER, DB_DSN, JWT_SECRET, SEED_PATH).
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "doughjo.db")
	viper.SetDefault("seed.path", "data/lessons.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config.yaml found, using defaults and environment variables")
	}
}
