package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dinesafe/dinesafe/internal/audit"
	"github.com/dinesafe/dinesafe/internal/catalog"
	"github.com/dinesafe/dinesafe/internal/engine"
	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/dinesafe/dinesafe/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dinesafe",
	Short: "Classifies menu items against dietary and allergen restrictions",
	Long:  `dinesafe serves a rule-evaluation API that classifies every menu item in a catalog against a diner's dietary preferences, avoided allergens and ingredient forms, cross-contact tolerance and per-allergen tolerated processed forms.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		source, err := catalog.FromConfig(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to configure catalog source: %v", err)
		}
		snapshot, err := source.Load(ctx)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		log.Printf("Loaded catalog with %d items from %s source", len(snapshot.Items), cfg.CatalogSource)

		recorder, err := audit.FromConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to configure audit trail: %v", err)
		}
		defer recorder.Close()

		srv := server.New(engine.New(snapshot), source, recorder)
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().String("listen-addr", ":8080", "HTTP listen address")
	rootCmd.Flags().String("catalog-source", "file", "Catalog source: file, s3 or postgres")
	rootCmd.Flags().String("catalog-path", "examples/catalog.json", "Catalog file path (file source)")
	rootCmd.Flags().Bool("audit-enabled", false, "Emit an audit event per evaluation run")
	rootCmd.Flags().String("audit-format", "console", "Audit format: console, json or parquet")
	rootCmd.Flags().Bool("kafka-enabled", false, "Send audit events to Kafka")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
