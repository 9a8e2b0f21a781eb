package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"quoteterm/internal/config"
	"quoteterm/internal/pricing"
	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
)

var priceCmd = &cobra.Command{
	Use:   "price <file>",
	Short: "Price a saved quote (.json or .csv) and print the lines",
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

		p := doc.Product()
		fmt.Printf("%-4s %-12s %6s %6s %-5s %10s\n", "#", "Location", "Width", "Height", "Type", "Price")
		for i, item := range p.Items {
			if item.IsEmpty() {
				continue
			}
			fmt.Printf("%-4d %-12s %6s %6s %-5s %10s\n",
				i+1, item.Location, intText(item.Width), intText(item.Height), item.FabricType, moneyText(item.LinePrice))
		}
		fmt.Println()
		for _, kind := range quote.AccessoryKinds() {
			a := p.Summary.Accessories.Get(kind)
			if a == nil || a.Price == 0 {
				continue
			}
			fmt.Printf("%-30s %10.2f\n", fmt.Sprintf("%s x%d", kind, a.Count), a.Price)
		}
		fmt.Printf("%-30s %10s\n", "Total", moneyText(p.Summary.TotalSum))
		return nil
	},
}

// priceFile parses a quote file and reprices it against catalog. A row that
// cannot be priced is reported on stderr and left without a price.
func priceFile(path string, catalog *config.Catalog) (quote.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return quote.Document{}, fmt.Errorf("open file: %w", err)
	}
	engine := pricing.NewEngine(catalog)
	strategy, err := rollerStrategy(catalog)
	if err != nil {
		return quote.Document{}, err
	}
	loaded, err := quotefile.Parse(filepath.Base(path), content, strategy.NewItem)
	if err != nil {
		return quote.Document{}, err
	}

	doc, rowErr := engine.CalculateAndSum(loaded.Document, strategy)
	if rowErr != nil {
		fmt.Fprintln(os.Stderr, rowErr.Message)
	}
	doc, err = engine.RecalculateAccessories(doc, strategy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	doc = engine.RefreshTotal(doc)
	if doc.Product() == nil {
		return quote.Document{}, quotefile.ErrInvalidFormat
	}
	return doc, nil
}

func rollerStrategy(catalog *config.Catalog) (pricing.Strategy, error) {
	return pricing.NewFactory(catalog).Strategy(quote.RollerBlind)
}

func intText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func moneyText(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
