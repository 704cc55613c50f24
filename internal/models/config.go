package models

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Table    string `mapstructure:"table"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	ObjectKey  string `mapstructure:"object_key"`
}

type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`

	// Catalog source: "file", "s3" or "postgres".
	CatalogSource string `mapstructure:"catalog_source"`
	CatalogPath   string `mapstructure:"catalog_path"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
	Database     DatabaseConfig     `mapstructure:"database"`

	// Audit trail for evaluation runs. Format is "console", "json" or
	// "parquet"; Kafka takes precedence when enabled.
	AuditEnabled    bool   `mapstructure:"audit_enabled"`
	AuditFormat     string `mapstructure:"audit_format"`
	AuditPath       string `mapstructure:"audit_path"`
	AuditFolder     string `mapstructure:"audit_folder"`
	AuditTopic      string `mapstructure:"audit_topic"`
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("catalog_source", "file")
	viper.SetDefault("catalog_path", "examples/catalog.json")
	viper.SetDefault("audit_format", "console")
	viper.SetDefault("audit_topic", "menu_evaluations")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
