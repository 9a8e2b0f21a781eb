package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quoteterm/internal/config"
	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
)

var (
	exportFormat   string
	exportOut      string
	exportQuoteID  string
	exportCustomer string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Reprice a saved quote and export it as csv, json, xlsx or pdf",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgStore, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		catalog, err := loadCatalog(cfgStore)
		if err != nil {
			return err
		}
		doc, err := priceFile(args[0], catalog)
		if err != nil {
			return err
		}
		strategy, err := rollerStrategy(catalog)
		if err != nil {
			return err
		}
		doc = withHeader(newQuoteStore(catalog, strategy), doc, exportQuoteID, exportCustomer)

		format := strings.ToLower(exportFormat)
		now := time.Now().In(cfgStore.Location())
		data, err := quotefile.Encode(format, doc, quotefile.Meta{Operator: cfgStore.Config.Name, Date: now})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(exportDir(cfgStore), quotefile.FileName(format, now))
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Exported %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv, json, xlsx or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (defaults to the export directory)")
	exportCmd.Flags().StringVar(&exportQuoteID, "quote-id", "", "quote number printed on the export")
	exportCmd.Flags().StringVar(&exportCustomer, "customer", "", "customer name printed on the export")
}

// withHeader loads doc into quotes and stamps the quote id and customer name.
// Empty values keep what the file carried.
func withHeader(quotes *quote.Store, doc quote.Document, quoteID, customer string) quote.Document {
	if !quotes.Replace(doc) {
		return doc
	}
	if quoteID != "" {
		quotes.SetQuoteID(quoteID)
	}
	if customer != "" {
		c := doc.Customer
		c.Name = customer
		quotes.SetCustomer(c)
	}
	return quotes.Snapshot()
}

func exportDir(cfgStore *config.Store) string {
	if dir := strings.TrimSpace(cfgStore.Config.ExportDir); dir != "" {
		return dir
	}
	return "."
}
