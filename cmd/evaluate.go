package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/dinesafe/dinesafe/internal/catalog"
	"github.com/dinesafe/dinesafe/internal/engine"
	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Runs a one-shot evaluation of a diner profile against the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		profilePath, _ := cmd.Flags().GetString("profile")
		perAllergen, _ := cmd.Flags().GetBool("per-allergen")

		data, err := os.ReadFile(profilePath)
		if err != nil {
			log.Fatalf("Failed to read profile: %v", err)
		}
		var req struct {
			Profile   models.DinerProfile `json:"profile"`
			Tolerance models.Tolerance    `json:"tolerance,omitempty"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			log.Fatalf("Failed to parse profile: %v", err)
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

		report := engine.New(snapshot).Evaluate(req.Profile, engine.Options{
			Tolerance:   req.Tolerance,
			PerAllergen: perAllergen,
		})

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		fmt.Println(string(out))
	},
}

func init() {
	evaluateCmd.Flags().String("profile", "examples/profile.json", "Diner profile JSON file")
	evaluateCmd.Flags().Bool("per-allergen", false, "Include the per-allergen safe-item mapping")
	rootCmd.AddCommand(evaluateCmd)
}
