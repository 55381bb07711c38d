package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/boobalan-mca23/jeevagold/internal/models"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Defaults DefaultsConfig
	Shop     models.ShopInfo
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

type DefaultsConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	BillPrefix    string `mapstructure:"bill_prefix"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, falling back to environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
		Defaults: DefaultsConfig{
			AdminUsername: viper.GetString("ADMIN_USERNAME"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
			BillPrefix:    viper.GetString("BILL_PREFIX"),
		},
	}

	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "5000"
	}
	if AppConfig.Defaults.BillPrefix == "" {
		AppConfig.Defaults.BillPrefix = "BILL"
	}

	// Shop identity for printed bills lives in a separate TOML file.
	shopViper := viper.New()
	shopViper.SetConfigFile("config/config.toml")
	shopViper.SetConfigType("toml")
	if err := shopViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using empty shop info: %v", err)
	} else {
		if err := shopViper.UnmarshalKey("shop", &AppConfig.Shop); err != nil {
			log.Printf("Error: failed to unmarshal shop info from TOML: %v", err)
		}
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Shop Name: %s", AppConfig.Shop.Name)
}
