package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	cfgPkg "github.com/xhad/nobel/pkg/config"
	"github.com/xhad/nobel/pkg/logger"
	"github.com/xhad/nobel/pkg/nobel"
	"github.com/xhad/nobel/pkg/store"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	year       int
	category   string
	yearFrom   int
	yearTo     int
	apiURL     string
	timeout    time.Duration
	dbURL      string
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "nobel-fetcher",
		Short:         "Look up Nobel Prize laureates by award year",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(cmd, opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
				return err
			}

			log, err := logger.New(logger.Config{
				Level:       config.Log.Level,
				Development: config.Log.Development,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := run(ctx, config, opts.year, cmd.Flags().Changed("year"), in, out, log); err != nil {
				log.Error("fetch failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(color.RedString("Error: %v", err))
		c.PrintErrln(c.UsageString())
		return err
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file")
	flags.IntVar(&opts.year, "year", 0, "Award year to search (prompted when omitted)")
	flags.StringVar(&opts.category, "category", "", "Prize category (phy, che, med, lit, pea, eco)")
	flags.IntVar(&opts.yearFrom, "from", 0, "First award year to download")
	flags.IntVar(&opts.yearTo, "to", 0, "Last award year to download")
	flags.StringVar(&opts.apiURL, "api-url", "", "Nobel Prize API base URL")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP request timeout")
	flags.StringVar(&opts.dbURL, "db-url", "", "PostgreSQL connection string for storing laureates")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts options) (*cfgPkg.Config, error) {
	config, err := cfgPkg.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	// Flags override the config file when set explicitly
	flags := cmd.Flags()
	if flags.Changed("category") {
		config.API.Category = opts.category
	}
	if flags.Changed("from") {
		config.API.YearFrom = opts.yearFrom
	}
	if flags.Changed("to") {
		config.API.YearTo = opts.yearTo
	}
	if flags.Changed("api-url") {
		config.API.BaseURL = opts.apiURL
	}
	if flags.Changed("timeout") {
		config.API.Timeout = opts.timeout
	}
	if flags.Changed("db-url") {
		config.Database.URL = opts.dbURL
	}
	if flags.Changed("log-level") {
		config.Log.Level = opts.logLevel
	}

	if errs := config.Validate(); len(errs) > 0 {
		return nil, errors.Join(toErrors(errs)...)
	}
	return config, nil
}

func toErrors(errs []cfgPkg.ValidationError) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

func getSpinner(out io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func run(ctx context.Context, config *cfgPkg.Config, year int, yearSet bool, in io.Reader, out io.Writer, log *zap.Logger) error {
	if !yearSet {
		var err error
		year, err = nobel.PromptYear(in, out, config.API.YearFrom, config.API.YearTo)
		if err != nil {
			return err
		}
	} else if err := nobel.ValidateYear(year, config.API.YearFrom, config.API.YearTo); err != nil {
		return err
	}

	client, err := nobel.NewWithConfig(nobel.ClientConfig{
		BaseURL:   config.API.BaseURL,
		Version:   config.API.Version,
		Category:  config.API.Category,
		YearFrom:  config.API.YearFrom,
		YearTo:    config.API.YearTo,
		Limit:     config.API.Limit,
		Timeout:   config.API.Timeout,
		RateLimit: config.API.RateLimit,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	var (
		sink    nobel.Sink
		archive nobel.Archive
	)
	if config.Database.URL != "" {
		laureateStore, err := store.NewWithConfig(ctx, store.LaureateStoreConfig{
			ConnString: config.Database.URL,
			TableName:  config.Database.TableName,
		})
		if err != nil {
			// Persistence is optional; results are still printed.
			log.Error("failed to initialize laureate store", zap.Error(err))
		} else {
			defer laureateStore.Close()
			sink = laureateStore
			archive = laureateStore
		}
	}

	interactive := isTerminal(out)

	var spinner *progressbar.ProgressBar
	if interactive {
		spinner = getSpinner(os.Stderr, " Fetching laureates...")
	}
	finder := nobel.NewFinder(client, sink, log)
	if archive != nil {
		finder.WithArchive(archive)
	}
	report, err := finder.FindByYear(ctx, year)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return err
	}

	if report.Offline {
		fmt.Fprintln(os.Stderr, color.YellowString("Showing stored laureates, the Nobel Prize API could not be reached."))
	}
	nobel.NewPrinter(out, interactive).PrintAll(report.Summaries)
	log.Debug("search complete",
		zap.Int("year", year),
		zap.Int("total", report.Total),
		zap.Int("printed", len(report.Summaries)),
		zap.Bool("offline", report.Offline))
	return nil
}
