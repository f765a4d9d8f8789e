package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rallyctl/config"
	"github.com/s0up4200/rallyctl/rally"
)

// skipClientAnnotation marks commands that run without config or a login
const skipClientAnnotation = "skip-client"

var (
	cfgFile     string
	cfg         *config.Config
	logger      = zerolog.Nop()
	rallyClient *rally.Client

	// Command flags
	workspace    string
	outputFormat string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rallyctl",
	Short: "A command line client for the Rally web services API",
	Long: `rallyctl reads and writes Rally objects from the command line.

Stories, defects, tasks and portfolio items can be queried with the Rally
query language, fetched by id, created, updated and deleted. Friendly type
names such as "story" and "feature" are translated to their API names.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for the version and self-update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace reference, overrides rally.workspace")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (json|yaml)")
}

// initializeApp loads the configuration and logs in to Rally
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipClientAnnotation] == "true" {
		return nil
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if outputFormat != "" {
		if !config.ValidOutputFormat(outputFormat) {
			return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", outputFormat)
		}
		cfg.Output.Format = outputFormat
	}

	// Command line workspace wins over config
	if cmd.Flags().Changed("workspace") {
		cfg.Rally.Workspace = workspace
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Rally.Timeout)
	defer cancel()

	rallyClient, err = rally.NewClient(ctx, cfg.Rally.Username, cfg.Rally.Password, logger,
		rally.WithHost(cfg.Rally.Host),
		rally.WithProtocolVersion(cfg.Rally.ProtocolVersion),
		rally.WithUserAgent(userAgent(cfg.Rally.UserAgent)),
		rally.WithTimeout(cfg.Rally.Timeout),
		rally.WithConcurrency(cfg.Rally.Concurrency),
		rally.WithWorkspace(cfg.Rally.Workspace),
	)
	if err != nil {
		return fmt.Errorf("failed to create Rally client: %w", err)
	}

	return nil
}

// userAgent appends the build version to the default user agent
func userAgent(configured string) string {
	if configured == "" || configured == rally.DefaultUserAgent {
		return rally.DefaultUserAgent + "/" + version
	}
	return configured
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
