// backend-go/internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	App        AppConfig
	Cache      CacheConfig
	Storage    StorageConfig
	Drive      DriveConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	LogFormat      string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AppConfig struct {
	DataDir string
	// DatasetSource is one of "file", "s3" or "drive"
	DatasetSource string
	// DatasetPath is a local .xlsx file or a directory of CSV exports
	DatasetPath string
	// DatasetKey is the object key (s3) or file id (drive) of the workbook
	DatasetKey string
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	SimulationTTLSeconds int
}

// StorageConfig encapsulates the connection info of an S3-compatible bucket
type StorageConfig struct {
	Provider  string // "minio" or "sevalla"
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type DriveConfig struct {
	CredentialsJSON string
}

// SimulationConfig holds the defaults applied to incomplete simulation requests
type SimulationConfig struct {
	LeadTimeMode string
	OrderMonths  float64
	// InitialStock nil means each SKU starts from its dataset stock quantity
	InitialStock *float64
	WarningRatio float64
	DisplayDays  int
}

// Defaults converts the configured values into request defaults
func (c SimulationConfig) Defaults() domain.SimulationDefaults {
	mode, err := domain.ParseLeadTimeMode(c.LeadTimeMode)
	if err != nil {
		mode = domain.LeadTimeAverage
	}
	return domain.SimulationDefaults{
		LeadTimeMode: mode,
		OrderMonths:  c.OrderMonths,
		InitialStock: c.InitialStock,
		WarningRatio: c.WarningRatio,
		DisplayDays:  c.DisplayDays,
	}
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		ensureDir(viper.GetString("APP_DATA_DIR"))

		instance = build()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("DB_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "inventory_flow")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("APP_DATA_DIR", "./data")
	viper.SetDefault("DATASET_SOURCE", "file")
	viper.SetDefault("DATASET_PATH", "./data/Dynamic Inventory Analytics.xlsx")
	viper.SetDefault("DATASET_KEY", "")
	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_SIMULATION_TTL_SECONDS", 300)
	viper.SetDefault("STORAGE_PROVIDER", "minio")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_SSL", true)
	viper.SetDefault("SIM_LEAD_TIME_MODE", "average")
	viper.SetDefault("SIM_ORDER_MONTHS", 3.0)
	viper.SetDefault("SIM_WARNING_RATIO", 0.2)
	viper.SetDefault("SIM_DISPLAY_DAYS", 30)
}

func build() *Config {
	var initialStock *float64
	if viper.IsSet("SIM_INITIAL_STOCK") {
		v := viper.GetFloat64("SIM_INITIAL_STOCK")
		initialStock = &v
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Mode:           viper.GetString("SERVER_MODE"),
			LogFormat:      viper.GetString("LOG_FORMAT"),
			ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		App: AppConfig{
			DataDir:       viper.GetString("APP_DATA_DIR"),
			DatasetSource: viper.GetString("DATASET_SOURCE"),
			DatasetPath:   viper.GetString("DATASET_PATH"),
			DatasetKey:    viper.GetString("DATASET_KEY"),
		},
		Cache: CacheConfig{
			Enabled:              viper.GetBool("CACHE_ENABLED"),
			RedisURL:             viper.GetString("REDIS_URL"),
			RedisHost:            viper.GetString("REDIS_HOST"),
			RedisPort:            viper.GetString("REDIS_PORT"),
			RedisPassword:        viper.GetString("REDIS_PASSWORD"),
			RedisDB:              viper.GetInt("REDIS_DB"),
			SimulationTTLSeconds: viper.GetInt("CACHE_SIMULATION_TTL_SECONDS"),
		},
		Storage: StorageConfig{
			Provider:  viper.GetString("STORAGE_PROVIDER"),
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
		},
		Drive: DriveConfig{
			CredentialsJSON: viper.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON"),
		},
		Simulation: SimulationConfig{
			LeadTimeMode: viper.GetString("SIM_LEAD_TIME_MODE"),
			OrderMonths:  viper.GetFloat64("SIM_ORDER_MONTHS"),
			InitialStock: initialStock,
			WarningRatio: viper.GetFloat64("SIM_WARNING_RATIO"),
			DisplayDays:  viper.GetInt("SIM_DISPLAY_DAYS"),
		},
	}
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
