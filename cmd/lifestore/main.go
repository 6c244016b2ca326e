package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/analysis"
	"github.com/pbaille/lifestore/internal/api"
	"github.com/pbaille/lifestore/internal/app"
	"github.com/pbaille/lifestore/internal/assets"
	"github.com/pbaille/lifestore/internal/config"
	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/export"
	"github.com/pbaille/lifestore/internal/history"
	"github.com/pbaille/lifestore/internal/logging"
	"github.com/pbaille/lifestore/internal/store"
	"github.com/pbaille/lifestore/internal/synth"
	"github.com/pbaille/lifestore/internal/theme"
)

var (
	cfgFile string
	verbose bool

	v      = config.New()
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lifestore",
		Short: "Life receipt store: one fortune analysis, eight artifacts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(v, cfgFile)
			if err != nil {
				return err
			}

			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}
			logger, err = logging.New(level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./lifestore.yaml or ~/.lifestore/lifestore.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.String("db", "", "database path")
	flags.String("analysis-url", "", "analysis service base URL")
	flags.String("assets", "", "meme assets directory")
	_ = v.BindPFlag("db_path", flags.Lookup("db"))
	_ = v.BindPFlag("analysis.url", flags.Lookup("analysis-url"))
	_ = v.BindPFlag("assets_dir", flags.Lookup("assets"))

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(themesCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(memesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.DBPath)
}

// session bundles a controller with the resources it holds
type session struct {
	ctrl     *app.Controller
	registry *theme.Registry
	store    *store.Store
	capturer *export.RodCapturer
}

func (s *session) Close() {
	if err := s.capturer.Close(); err != nil {
		logger.Warn("close browser", zap.Error(err))
	}
	s.store.Close()
}

func newSession() (*session, error) {
	db, err := getStore()
	if err != nil {
		return nil, err
	}

	registry := theme.Default()
	capturer := export.NewRodCapturer(export.RodConfig{
		ControlURL: cfg.Browser.ControlURL,
		Bin:        cfg.Browser.Bin,
		Headless:   cfg.Browser.Headless,
		Timeout:    cfg.Browser.Timeout,
	})

	ctrl, err := app.New(app.Deps{
		Analyzer: analysis.NewClient(cfg.Analysis.URL, cfg.Analysis.Timeout, logger),
		Synth:    synth.New(nil),
		Registry: registry,
		History:  history.New(db, logger),
		Exporter: export.New(capturer, export.Options{
			AssetsDir:   cfg.AssetsDir,
			AllowRemote: cfg.Browser.AllowRemote,
		}, logger),
		Logger: logger,
	}, app.Options{MemoSize: cfg.MemoSize})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &session{ctrl: ctrl, registry: registry, store: db, capturer: capturer}, nil
}

func analyzeCmd() *cobra.Command {
	var (
		form     app.Form
		gender   string
		themeID  string
		htmlOut  string
		exportTo string
		fromLast bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a birth date and MBTI and print the artifact summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if fromLast {
				h := s.ctrl.History()
				if len(h) == 0 {
					return errors.New("no saved input")
				}
				form = app.FormFromHistory(h[0])
			} else {
				form.Gender = domain.Gender(gender)
			}

			id := domain.ThemeID(themeID)
			if _, ok := s.registry.Lookup(id); !ok {
				return fmt.Errorf("%w: %s", app.ErrUnknownTheme, id)
			}

			ctx := cmd.Context()
			res, err := s.ctrl.Submit(ctx, form)
			if err != nil {
				if msg := s.ctrl.Snapshot().Error; msg != "" {
					return errors.New(msg)
				}
				return err
			}
			if err := s.ctrl.SelectTheme(id); err != nil {
				return err
			}

			printSummary(res)

			if htmlOut != "" {
				f, err := os.Create(htmlOut)
				if err != nil {
					return fmt.Errorf("create html file: %w", err)
				}
				defer f.Close()
				if err := s.ctrl.Render(f); err != nil {
					return err
				}
				fmt.Printf("Artifact: %s\n", htmlOut)
			}

			if exportTo != "" {
				out, err := s.ctrl.Export(ctx)
				if err != nil {
					var exportErr *export.Error
					if errors.As(err, &exportErr) {
						return fmt.Errorf("%s (%v)", exportErr.Notice(), exportErr.Err)
					}
					return err
				}
				path, err := export.DirSink{Dir: exportTo}.Deliver(ctx, out)
				if err != nil {
					return err
				}
				fmt.Printf("Saved: %s (%dx%d)\n", path, out.Width, out.Height)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.BirthDate, "date", "d", "", "birth date, e.g. 1998.05.05")
	cmd.Flags().StringVarP(&form.BirthTime, "time", "t", "", "birth time HH:MM (optional)")
	cmd.Flags().StringVarP(&gender, "gender", "g", "male", "male or female")
	cmd.Flags().StringVarP(&form.MBTI, "mbti", "m", "ENTP", "MBTI type")
	cmd.Flags().StringVar(&themeID, "theme", string(domain.ThemeReceipt), "artifact theme")
	cmd.Flags().StringVar(&htmlOut, "html", "", "write the artifact document to this file")
	cmd.Flags().StringVar(&exportTo, "export", "", "save the artifact PNG into this directory")
	cmd.Flags().BoolVar(&fromLast, "last", false, "reuse the most recent saved input")
	return cmd
}

func printSummary(res *app.Result) {
	u := res.Response.UserInfo
	a := res.Response.SajuAnalysis

	fmt.Printf("Result:  %s\n", res.ID[:8])
	fmt.Printf("Guest:   %s / %s / %s\n", u.BirthDate(), u.MBTI, u.Gender)
	fmt.Printf("Pillars: %s%s %s%s %s%s", a.YearPillar.Stem, a.YearPillar.Branch,
		a.MonthPillar.Stem, a.MonthPillar.Branch, a.DayPillar.Stem, a.DayPillar.Branch)
	if a.HourPillar != nil {
		fmt.Printf(" %s%s", a.HourPillar.Stem, a.HourPillar.Branch)
	}
	fmt.Println()
	fmt.Printf("Trait:   %s\n", a.MainTraitKorean)

	if r := res.Themes.Receipt; r != nil && r.Total != nil {
		fmt.Printf("Total:   %d\n", *r.Total)
	}
	if w := res.Themes.Wanted; w != nil {
		fmt.Printf("Wanted:  %q %s\n", w.CriminalAlias, w.DangerLevel)
	}
	if rank := res.Response.Rank; rank != nil {
		fmt.Printf("Rank:    %s %s\n", rank.Grade, rank.TitleKorean)
	}
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List artifact themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := theme.Default()
			for _, id := range r.List() {
				c := r.Config(id)
				fmt.Printf("%-9s %-8s %s  %s\n", id, c.Background, c.ExportFileName, c.Label)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entries := history.New(s, logger).Load()
			if len(entries) == 0 {
				fmt.Println("No saved inputs")
				return nil
			}
			for _, e := range entries {
				printEntry(e)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm [timestamp]",
		Short: "Remove a saved input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %w", err)
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, e := range history.New(s, logger).Remove(ts) {
				printEntry(e)
			}
			return nil
		},
	})
	return cmd
}

func printEntry(e domain.HistoryEntry) {
	birthTime := e.BirthTime
	if birthTime == "" {
		birthTime = "--:--"
	}
	saved := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04")
	fmt.Printf("%d  %s %s  %-6s %s  (%s)\n", e.Timestamp, e.BirthDate, birthTime, e.Gender, e.MBTI, saved)
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if addr == "" {
				addr = cfg.Listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.New(s.ctrl, s.registry, cfg.AssetsDir, addr, logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (default from config)")
	return cmd
}

func memesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memes",
		Short: "Manage meme template images",
	}

	var timeout time.Duration
	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Download missing meme images into the assets directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Saving to %s (%d files)\n", cfg.AssetsDir, len(assets.MemeSources))

			report, err := assets.NewFetcher(timeout, logger).Sync(cmd.Context(), cfg.AssetsDir, assets.MemeSources)
			if err != nil {
				return err
			}

			fmt.Printf("Downloaded: %d, skipped: %d\n", len(report.Downloaded), len(report.Skipped))
			for name, err := range report.Failed {
				fmt.Printf("  failed %s: %v\n", name, err)
			}
			return nil
		},
	}
	fetch.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-file download timeout")

	cmd.AddCommand(fetch)
	return cmd
}
