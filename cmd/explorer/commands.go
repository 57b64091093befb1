package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/config"
	"SeasonalityExplorer/internal/currency"
	"SeasonalityExplorer/internal/export"
	"SeasonalityExplorer/internal/httpapi"
	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/report"
	"SeasonalityExplorer/internal/render"
	"SeasonalityExplorer/internal/scheduler"
	"SeasonalityExplorer/internal/selection"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "explorer",
		Short: "Market seasonality calendar explorer",
		Long: `explorer generates a synthetic daily market series and lets you browse it
as a calendar of volatility, liquidity and performance, over HTTP or in the terminal.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSeriesCmd())

	rootCmd.PersistentFlags().String("config", "", "Configuration file path (default configs/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return runServe(a)
		},
	}
}

func runServe(a *app) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := a.sess.Load(ctx, a.cfg.Generator.LoadDelay); err != nil && !errors.Is(err, context.Canceled) {
			a.log.WithError(err).Error("series load failed")
		}
	}()

	sched := scheduler.NewScheduler(a.sess, a.loc, a.log)
	if err := sched.RegisterAll(a.cfg.Schedule.RegenerateCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           httpapi.NewServer(a.sess, a.log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	a.log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("server shutdown error: %v", err)
	}
	a.log.Info("server stopped")
	return nil
}

// loadNow produces the series without the interactive delay.
func loadNow(a *app) error {
	return a.sess.Load(context.Background(), 0)
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month of the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			layer, _ := cmd.Flags().GetString("layer")
			theme, _ := cmd.Flags().GetString("theme")

			a, err := newApp(cmd, func(cfg *config.Config) {
				if layer != "" {
					cfg.Defaults.DataLayer = model.DataLayer(layer)
				}
				if theme != "" {
					cfg.Defaults.ColorTheme = model.ColorTheme(theme)
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			var shown time.Time
			if month != "" {
				if shown, err = calendar.ParseMonth(month, a.loc); err != nil {
					return fmt.Errorf("invalid month, use YYYY-MM: %w", err)
				}
			}
			if err := loadNow(a); err != nil {
				return err
			}
			cells, shown, err := a.sess.Calendar(shown)
			if err != nil {
				return err
			}
			fmt.Println(render.Calendar(shown, cells, a.cfg.Defaults.DataLayer, a.cfg.Defaults.ColorTheme))
			return nil
		},
	}
	cmd.Flags().String("month", "", "Month in YYYY-MM format (current month if not provided)")
	cmd.Flags().String("layer", "", "Data layer: volatility, liquidity, performance or all")
	cmd.Flags().String("theme", "", "Color theme: default, contrast or colorblind")
	return cmd
}

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Print the detail panel for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, _ := cmd.Flags().GetString("currency")
			a, err := newApp(cmd, func(cfg *config.Config) {
				if code != "" {
					cfg.Defaults.Currency = strings.ToUpper(code)
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			day, err := calendar.ParseKey(args[0], a.loc)
			if err != nil {
				return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
			}
			if err := loadNow(a); err != nil {
				return err
			}
			rec, ok, err := a.sess.Record(day)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no data for %s", args[0])
			}

			ix, _ := a.sess.Index()
			detail := report.BuildDetail(day, rec, a.cfg.Defaults.Currency)
			detail.Range = report.RangeLine(ix.Series(), rec, a.cfg.Defaults.Currency)
			fmt.Print(detail.Text())

			points := report.Chart(ix.Series(), &day)
			prices := make([]float64, len(points))
			for i, p := range points {
				prices[i] = p.Price
			}
			fmt.Printf("\n30-Day Trend (%s .. %s)\n", points[0].Label, points[len(points)-1].Label)
			fmt.Println(render.Sparkline(prices, lipgloss.Color("#3B82F6")))
			return nil
		},
	}
	cmd.Flags().String("currency", "", fmt.Sprintf("Currency code %v", currency.Codes))
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an analysis export document",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			date, _ := cmd.Flags().GetString("date")
			a, err := newApp(cmd, func(cfg *config.Config) {
				if dir != "" {
					cfg.Export.Dir = dir
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			if date != "" {
				day, err := calendar.ParseKey(date, a.loc)
				if err != nil {
					return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
				}
				_ = a.sess.Update(func(st *selection.State) error {
					st.Select(day)
					return nil
				})
			}

			path, err := a.sess.ExportFile(a.cfg.Export.Dir)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().String("dir", "", "Output directory (export.dir if not provided)")
	cmd.Flags().String("date", "", "Selected date in YYYY-MM-DD format")
	return cmd
}

func newSeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series [PATH.parquet]",
		Short: "Write the generated series to a Parquet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			a, err := newApp(cmd, func(cfg *config.Config) {
				if cmd.Flags().Changed("days") {
					cfg.Generator.Days = days
				}
			})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := loadNow(a); err != nil {
				return err
			}
			ix, err := a.sess.Index()
			if err != nil {
				return err
			}
			if err := export.WriteSeries(args[0], ix.Series()); err != nil {
				return err
			}
			fmt.Printf("wrote %s records to %s\n", humanize.Comma(int64(ix.Len())), args[0])
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "Trailing window length in days (generator.days if not provided)")
	return cmd
}
