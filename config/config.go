package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	POS      POSConfig
	Defaults DefaultsConfig
	Store    StoreInfo
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

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type POSConfig struct {
	// InvoicePrefix is prepended to generated invoice numbers: PREFIX-YYYYMMDD-SEQ.
	InvoicePrefix string
	// ScanDebounceMS is the inter-keystroke gap (milliseconds) below which
	// input is treated as a scanner stream rather than human typing.
	ScanDebounceMS int
	// PrinterAddr is the network address of the receipt printer, empty if none.
	PrinterAddr string
}

type DefaultsConfig struct {
	AdminPassword   string `mapstructure:"admin_password"`
	AdminEmployeeID string `mapstructure:"admin_employee_id"`
	CompanyName     string `mapstructure:"company_name"`
	CompanyAddress  string `mapstructure:"company_address"`
	CompanyPhone    string `mapstructure:"company_phone"`
}

type StoreInfo struct {
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Whatsapp     string   `json:"whatsapp"`
	OpeningHours string   `json:"opening_hours"`
	WorkingDays  []string `json:"working_days"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Enable reading from OS environment variables as fallback/override
	viper.AutomaticEnv()

	viper.BindEnv("SERVER_PORT", "PORT") // Fallback to PORT if SERVER_PORT is missing
	viper.BindEnv("DATABASE_URL")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)
	viper.SetDefault("INVOICE_PREFIX", "INV")
	viper.SetDefault("SCAN_DEBOUNCE_MS", 200)

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
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		POS: POSConfig{
			InvoicePrefix:  viper.GetString("INVOICE_PREFIX"),
			ScanDebounceMS: viper.GetInt("SCAN_DEBOUNCE_MS"),
			PrinterAddr:    viper.GetString("PRINTER_ADDR"),
		},
		Defaults: DefaultsConfig{
			AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
			AdminEmployeeID: viper.GetString("ADMIN_EMPLOYEE_ID"),
			CompanyName:     viper.GetString("COMPANY_NAME"),
			CompanyAddress:  viper.GetString("COMPANY_ADDRESS"),
			CompanyPhone:    viper.GetString("COMPANY_PHONE"),
		},
	}

	// Load TOML config for public store info
	storeViper := viper.New()
	storeViper.SetConfigFile("config/store.toml")
	storeViper.SetConfigType("toml")
	if err := storeViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/store.toml not found, using empty store info: %v", err)
	} else {
		if err := storeViper.UnmarshalKey("store", &AppConfig.Store); err != nil {
			log.Printf("Error: Failed to unmarshal store info from TOML: %v", err)
		}
	}
}
