package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/dinesafe/dinesafe/internal/factories"
	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates a sample menu catalog",
	Run: func(cmd *cobra.Command, args []string) {
		count, _ := cmd.Flags().GetInt("items")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		factory := factories.NewCatalogFactory(seed)
		bar := progressbar.Default(int64(count), "generating menu items")

		items := make([]models.MenuItem, 0, count)
		for i := 0; i < count; i++ {
			items = append(items, factory.CreateMenuItem())
			bar.Add(1)
		}

		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode catalog: %v", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			log.Fatalf("Failed to write catalog: %v", err)
		}
		log.Printf("Wrote %d menu items to %s", count, out)
	},
}

func init() {
	generateCmd.Flags().Int("items", 50, "Number of menu items to generate")
	generateCmd.Flags().Int64("seed", 42, "Random seed for generation")
	generateCmd.Flags().String("out", "examples/catalog.json", "Output file path")
	rootCmd.AddCommand(generateCmd)
}
