package cmd

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Rizky28eka/portfolio/internal/content"
	"github.com/Rizky28eka/portfolio/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates the registry and all content entries without building",
	Long: `The check command runs the same validation pass as build: the
site.yaml registry first (fatal on error), then every content entry.
It prints a table of all entries and every schema violation found, and
exits non-zero when a build would fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := site.Load(appConfig.SiteFile); err != nil {
			return err
		}

		lib, report := content.LoadLibrary(appConfig.ContentDir)

		printEntryTable(lib)

		for _, col := range lib.All() {
			for _, entry := range col.All() {
				if entry.LegacyDate {
					log.Warn("legacy comma-separated date format, prefer YYYY-MM-DD",
						"file", entry.File, "date", entry.Date)
				}
			}
		}

		if !report.OK() {
			for _, v := range report.Violations {
				log.Error("schema violation", "file", v.File, "field", v.Field, "reason", v.Err.Error())
			}

			return report.Err()
		}

		log.Info("all content entries valid")

		return nil
	},
}

// printEntryTable writes an aligned overview of every loaded entry.
// runewidth keeps columns straight when titles contain wide runes.
func printEntryTable(lib *content.Library) {
	header := []string{"FILE", "COLLECTION", "DATE", "DRAFT", "TITLE"}

	var rows [][]string
	for _, col := range lib.All() {
		for _, entry := range col.All() {
			draft := ""
			if entry.Draft {
				draft = "draft"
			}

			rows = append(rows, []string{
				entry.File,
				col.Name,
				entry.Published.Format("2006-01-02"),
				draft,
				entry.Title,
			})
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+2))
			}
		}
		fmt.Println(b.String())
	}

	printRow(header)
	for _, row := range rows {
		printRow(row)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
