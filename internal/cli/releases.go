package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Timbertighe/Junos-Scripts/internal/jtac"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "Show the JTAC recommended Junos releases per platform",
	Long: `Fetches the JTAC suggested-releases article and prints the
recommended release and last-updated date for every model in each product
line. The page renders its tables client-side, so the fetch retries until
they appear.`,
	Args: cobra.NoArgs,
	RunE: runReleases,
}

func init() {
	rootCmd.AddCommand(releasesCmd)
}

func runReleases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := jtac.NewFetcher(cfg.JTAC.URL)
	color.Yellow("Fetching %s", fetcher.URL)

	tables, err := fetcher.Tables(cmd.Context(), jtac.Families)
	if err != nil {
		return err
	}
	records, err := jtac.ExtractAll(jtac.Families, tables)
	if err != nil {
		return err
	}

	for _, family := range jtac.Families {
		color.Cyan("\n%s Series", strings.ToUpper(family.Tag))
		for _, record := range records[family.Tag] {
			fmt.Printf("Model: %s\n", record.Model)
			fmt.Printf("Recommended: %s\n", record.Release())
			if !record.Updated.IsZero() {
				fmt.Printf("Updated: %s\n", record.Updated.Format("2006-01-02"))
			}
			fmt.Println()
		}
	}
	return nil
}
