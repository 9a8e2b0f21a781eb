package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quoteterm/internal/autosave"
	"quoteterm/internal/bus"
	"quoteterm/internal/config"
	"quoteterm/internal/controller"
	"quoteterm/internal/events"
	"quoteterm/internal/pricing"
	"quoteterm/internal/quote"
	"quoteterm/internal/storage"
	"quoteterm/internal/ui"
	"quoteterm/internal/uistate"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:          "quote-term",
	Short:        "Roller blind quoting in the terminal",
	Long:         "quote-term prices roller blind orders from a size and fabric table, configures hardware per blind and exports the finished quote.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quote-term %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runSession starts the interactive quoting session.
func runSession(ctx context.Context) error {
	cfgStore, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	catalog, err := loadCatalog(cfgStore)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if os.Getenv("QUOTETERM_DEBUG") != "" {
		f, err := tea.LogToFile(filepath.Join(cfgStore.DataDir(), "quote-term.log"), "quote-term")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	db, err := storage.Open(ctx, cfgStore.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	factory := pricing.NewFactory(catalog)
	strategy, err := factory.Strategy(quote.RollerBlind)
	if err != nil {
		return err
	}

	b := bus.New[events.Kind, events.Event](logger)
	ctrl := controller.New(controller.Options{
		Bus:      b,
		Quotes:   newQuoteStore(catalog, strategy),
		UI:       uistate.NewStore(),
		Engine:   pricing.NewEngine(catalog),
		Factory:  factory,
		Logger:   logger,
		Operator: cfgStore.Config.Name,
	})

	program := ui.NewProgram(ui.Options{
		Bus:        b,
		Controller: ctrl,
		Saver:      autosave.New(db, cfgStore.Config.AutosaveKey, logger),
		Config:     cfgStore,
		Logger:     logger,
	})
	if err := program.Start(); err != nil {
		log.Println("program terminated:", err)
		return err
	}
	return nil
}

func loadCatalog(cfgStore *config.Store) (*config.Catalog, error) {
	if path := cfgStore.Config.CatalogPath; path != "" {
		catalog, err := config.LoadCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return catalog, nil
	}
	return config.DefaultCatalog()
}

// newQuoteStore builds the document store with rows shaped by strategy.
func newQuoteStore(catalog *config.Catalog, strategy pricing.Strategy) *quote.Store {
	return quote.NewStore(quote.RollerBlind, quote.Rules{
		FabricTypes:   catalog.FabricTypes,
		HeavyDutyArea: catalog.HeavyDutyArea,
		NewItem:       strategy.NewItem,
	})
}
