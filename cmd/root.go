package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/dailylink/internal/config"
	"github.com/chris-regnier/dailylink/internal/daily"
	"github.com/chris-regnier/dailylink/internal/link"
	"github.com/chris-regnier/dailylink/internal/logging"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/settings"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/chris-regnier/dailylink/internal/storage"
	"github.com/chris-regnier/dailylink/internal/storage/markdown"
	"github.com/chris-regnier/dailylink/internal/storage/siyuan"
	"github.com/chris-regnier/dailylink/internal/storage/sqlite"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	formatOverride string
	appConfig      *config.Config
	store          storage.Storage
	settingsStore  *settings.FileStore
	closeLog       func() error
)

var (
	logger = logging.Nop()
	now    = time.Now
)

// ErrReported marks an error whose message was already shown to the user.
var ErrReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "dailylink",
	Short: "Insert links to SiYuan daily notes",
	Long: `dailylink resolves the daily note for a date in your chosen notebook,
creating it when needed, and inserts a link to it.

Run without arguments in a terminal to open the editor with the /date,
/today, /tomorrow and /yesterday slash commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}
		if formatOverride != "" {
			if _, err := link.ParseInsertFormat(formatOverride); err != nil {
				return err
			}
		}

		log, closer, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logger, closeLog = log, closer

		store, err = openStorage(appConfig)
		if err != nil {
			return err
		}
		settingsStore = settings.NewFileStore(appConfig.DataDir)
		logger.Debug("storage ready", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		if store != nil {
			errs = append(errs, store.Close())
		}
		if closeLog != nil {
			errs = append(errs, closeLog())
		}
		return errors.Join(errs...)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to a link to today's note
			return insertRun(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), offsetTarget(slash.IDToday, 0), outputOptions{})
		}
		return editRun(cmd.Context(), cmd.OutOrStdout(), editOptions{})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (siyuan|markdown|sqlite)")
	rootCmd.PersistentFlags().StringVar(&formatOverride, "format", "", "link format for this run (block|url)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageSiYuan:
		return siyuan.New(cfg.SiYuan.URL,
			siyuan.WithToken(cfg.SiYuan.Token),
			siyuan.WithTimeout(cfg.SiYuan.Timeout),
		), nil
	case config.StorageMarkdown:
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case config.StorageSQLite:
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// currentSettings loads the settings file and applies --format.
func currentSettings() settings.Settings {
	s, err := settingsStore.Load()
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	if f, err := link.ParseInsertFormat(formatOverride); formatOverride != "" && err == nil {
		s.InsertFormat = f
	}
	return s
}

// newDispatcher builds the slash commands over the open storage.
func newDispatcher(opts ...slash.Option) *slash.Dispatcher {
	base := []slash.Option{
		slash.WithSettings(currentSettings),
		slash.WithLang(appConfig.Lang),
		slash.WithLogger(logger),
		slash.WithClock(now),
	}
	return slash.New(notebook.NewSelector(store), daily.NewResolver(store), append(base, opts...)...)
}
