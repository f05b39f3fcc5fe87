package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sigma_app/internal/ui"
	"sigma_app/platform/apperr"
	"sigma_app/platform/config"
	"sigma_app/platform/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

// errReported marks a failure that was already shown to the user.
var errReported = errors.New("reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sigma",
	Short: "SIGMA campus assistant",
	Long: `SIGMA is a campus assistant for students and faculty.

Run "sigma app" for the interactive screens, or use a subcommand to
look something up directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (or set SIGMA_API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (or set SIGMA_REQUEST_TIMEOUT)")

	faqCmd.Flags().StringVar(&faqCategory, "category", "", "Limit results to a category")
	menusCmd.Flags().StringVar(&menuDate, "date", "", "Serving date (YYYY-MM-DD)")
	menusCmd.Flags().StringVar(&menuCafe, "cafe", "", "Cafeteria name contains")
	menusCmd.Flags().IntVar(&menuLimit, "limit", 0, "Maximum rows (default 100)")
	devServerCmd.Flags().StringVar(&devAddr, "addr", "", "Listen address (or set SIGMA_DEV_ADDR)")

	menuUpsertCmd.Flags().StringVar(&upsertCafe, "cafe", "", "Cafeteria name (exact)")
	menuUpsertCmd.Flags().StringVar(&upsertDate, "date", "", "Serving date (YYYY-MM-DD)")
	menuUpsertCmd.Flags().StringVar(&upsertMeal, "meal", "", "Meal type, e.g. 중식")
	menuUpsertCmd.Flags().StringVar(&upsertItem, "item", "", "Item name")
	menuUpsertCmd.Flags().IntVar(&upsertPrice, "price", -1, "Price in won (omit for none)")
	menusCmd.AddCommand(menuUpsertCmd)

	rootCmd.AddCommand(
		appCmd,
		loginCmd,
		signUpCmd,
		coursesCmd,
		faqCmd,
		facilitiesCmd,
		scheduleCmd,
		profileCmd,
		chatCmd,
		cafeteriasCmd,
		menusCmd,
		devServerCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintln(os.Stderr, apperr.Message(err))
		}
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.APIBaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout != 0 {
		cfg.RequestTimeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// setup builds the app for a command invocation.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Env)
	return newApp(cfg, log, ui.NewSurveyDriver(), cmd.OutOrStdout())
}
