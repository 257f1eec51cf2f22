package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paisaledger/statement-extractor/internal/extractor"
	"github.com/paisaledger/statement-extractor/internal/models"
	"github.com/paisaledger/statement-extractor/internal/parser"
	"github.com/paisaledger/statement-extractor/internal/writer"
)

var (
	outputPath   string
	outputFormat string
	withTrace    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file> [file ...]",
	Short: "Extract draft transactions from statement files",
	Long: `Extract draft transactions from one or more input files.

The extraction path is chosen by file extension:
  .pdf             bank statement (text layer, with raw-stream and OCR fallbacks)
  .csv             bank CSV export with a header row
  .png .jpg .jpeg  payment-app screenshot (OCR)

Example:
  statement-extractor extract statement.pdf
  statement-extractor extract --format csv --output drafts.csv export.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().StringVar(&outputFormat, "format", "json", "output format: json or csv")
	extractCmd.Flags().BoolVar(&withTrace, "trace", false, "include per-line classifier trace in JSON output")
}

// fileResult is the per-file JSON emitted by the extract command.
type fileResult struct {
	File            string                    `json:"file"`
	Source          models.Source             `json:"source"`
	Bank            string                    `json:"bank,omitempty"`
	AccountNumber   string                    `json:"accountNumber,omitempty"`
	StatementPeriod string                    `json:"statementPeriod,omitempty"`
	Drafts          []models.DraftTransaction `json:"drafts"`
	Screenshot      *models.ScreenshotFields  `json:"screenshot,omitempty"`
	Skipped         []models.SkippedRow       `json:"skipped,omitempty"`
	Trace           []models.LineTrace        `json:"trace,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFormat != "json" && outputFormat != "csv" {
		return fmt.Errorf("unknown format %q: use json or csv", outputFormat)
	}

	var results []fileResult
	for _, path := range args {
		result, err := extractFile(path, cfg.OCRLanguage)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", path, err)
		}
		log.Info().Str("file", path).Int("drafts", len(result.Drafts)).Msg("extracted")
		results = append(results, *result)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if outputFormat == "csv" {
		var drafts []models.DraftTransaction
		for _, r := range results {
			drafts = append(drafts, r.Drafts...)
		}
		w := &writer.ReviewWriter{}
		if len(results) == 1 {
			w.IncludeMetadata = true
			w.Bank = results[0].Bank
			w.AccountNumber = results[0].AccountNumber
			w.StatementPeriod = results[0].StatementPeriod
		}
		return w.Write(out, drafts)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func extractFile(path, ocrLanguage string) (*fileResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}

	result := &fileResult{File: path, Drafts: []models.DraftTransaction{}}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		pages, err := extractor.ExtractText(path)
		if err != nil {
			log.Debug().Err(err).Msg("text extraction failed, trying OCR")
			pages, err = extractor.ExtractTextOCR(path, extractor.OCROptions{Language: ocrLanguage})
			if err != nil {
				return nil, err
			}
		}
		statement := parser.ParseStatement(pages)
		result.Source = models.SourcePDF
		result.Bank = statement.Bank
		result.AccountNumber = statement.AccountNumber
		result.StatementPeriod = statement.StatementPeriod
		for _, txn := range statement.Transactions {
			result.Drafts = append(result.Drafts, txn.DraftTransaction)
		}
		if withTrace {
			result.Trace = statement.Trace
		}

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		mapped, err := parser.MapCSV(f)
		if err != nil {
			return nil, err
		}
		result.Source = models.SourceCSV
		result.Drafts = append(result.Drafts, mapped.Drafts...)
		result.Skipped = mapped.Skipped

	case ".png", ".jpg", ".jpeg":
		text, err := extractor.ExtractImageText(path, extractor.OCROptions{
			Language:    ocrLanguage,
			PageSegMode: extractor.DefaultScreenshotOptions().PageSegMode,
		})
		if err != nil {
			return nil, err
		}
		fields := parser.ExtractScreenshotFields(text)
		result.Source = models.SourceOCR
		result.Screenshot = &fields

	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}

	return result, nil
}
