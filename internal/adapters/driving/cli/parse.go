package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/storage/file"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
	"github.com/mapkeeper/mapkeeper-cli/internal/core/services"
	"github.com/mapkeeper/mapkeeper-cli/internal/parsers/clippings"
	"github.com/mapkeeper/mapkeeper-cli/internal/parsers/tabular"
)

var parseCmd = &cobra.Command{
	Use:   "parse <input> <output>",
	Short: "Normalise a Kindle highlights export into canonical quotes",
	Long: `Parse reads a Kindle highlights export and writes one canonical
quote record per line (JSONL).

Two input formats are supported, selected by file extension:

  .csv, .tsv   tabular exports (Readwise, Bookcision, ...)
  anything else  the device's "My Clippings.txt" format`,
	Args: cobra.ExactArgs(2),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	svc := services.NewParseService(tabular.New(), clippings.New(), file.NewQuoteStore())

	summary, err := svc.Parse(cmd.Context(), inputPath, outputPath)
	if err != nil {
		return parseHint(inputPath, err)
	}

	printSummary(cmd, summary, outputPath)
	return nil
}

// parseHint attaches a format-specific troubleshooting note to parse
// failures so the operator knows what the file was expected to look
// like.
func parseHint(inputPath string, err error) error {
	if !errors.Is(err, domain.ErrNoQuotes) &&
		!errors.Is(err, domain.ErrInvalidInput) &&
		!errors.Is(err, domain.ErrUnsupportedFormat) {
		return err
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	switch ext {
	case ".csv", ".tsv":
		return fmt.Errorf("%w\nexpected a header row with a highlight/text column; "+
			"check the delimiter and column names", err)
	default:
		return fmt.Errorf("%w\nexpected \"My Clippings.txt\" blocks separated by "+
			"========== lines", err)
	}
}

func printSummary(cmd *cobra.Command, summary *domain.ParseSummary, outputPath string) {
	cmd.Println(headingStyle.Render("Parse complete"))
	cmd.Printf("%s %s\n", labelStyle.Render("Output:"), outputPath)
	cmd.Printf("%s %d\n", labelStyle.Render("Quotes:"), summary.Total)
	cmd.Printf("%s %d\n", labelStyle.Render("Authors:"), len(summary.Authors))
	cmd.Printf("%s %d\n", labelStyle.Render("Books:"), len(summary.Books))

	if summary.EarliestAdded != "" {
		cmd.Printf("%s %s to %s\n", labelStyle.Render("Added:"),
			summary.EarliestAdded, summary.LatestAdded)
	}

	top := services.TopAuthors(summary, 5)
	if len(top) > 0 {
		cmd.Println(labelStyle.Render("Top authors:"))
		for _, a := range top {
			cmd.Printf("  %s %s\n", successStyle.Render(fmt.Sprintf("%3d", a.Count)), a.Author)
		}
	}
}
