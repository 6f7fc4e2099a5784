package cmd

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wave/packages/collection"
	"github.com/abdul-hamid-achik/wave/packages/core/config"
	"github.com/abdul-hamid-achik/wave/packages/core/env"
	"github.com/abdul-hamid-achik/wave/packages/core/logging"
	"github.com/abdul-hamid-achik/wave/packages/core/runner"
	"github.com/abdul-hamid-achik/wave/packages/http"
	"github.com/abdul-hamid-achik/wave/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	dirFlag       string
	envFileFlag   string
	configFlag    string
	noColorFlag   bool
	noSpinnerFlag bool
	debugFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "wave",
	Short: "HTTP requests from the terminal.",
	Long: `wave sends HTTP requests from the command line and replays named
requests stored in YAML collections under the .wave directory.

Parameters after the URL use key:value for headers and key=value for body
fields. wave's own flags go before the URL.`,
	Example: `  wave get example.com
  wave post api.example.com/users name=john age=30
  wave put api.example.com/users/1 Authorization:Bearer123 status=active
  wave collection users "Get User" Authorization:Bearer456`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// session holds what setup builds for the running command.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *collection.Store
	runner *runner.Runner
}

var sess *session

// newBackend builds the backend that sends requests. Tests swap it for a
// mock.
var newBackend = func(cfg *config.Config, logger *slog.Logger) http.Backend {
	opts := []http.BackendOption{
		http.WithLogger(logger),
		http.WithDebug(debugFlag),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(cfg.UserAgent))
	}
	return http.NewRestyBackend(opts...)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag, config.ResolveDir(dirFlag))
	if err != nil {
		return &configError{err: err}
	}
	applyFlags(cmd, cfg)

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &configError{err: err}
	}
	if debugFlag {
		level = logging.LevelDebug
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	if cfg.EnvFile != "" {
		if _, err := env.LoadAndExportDotEnv(cfg.EnvFile); err != nil {
			return &configError{err: err}
		}
		logger.Debug("loaded env file", "path", cfg.EnvFile)
	}

	store := collection.NewStore(cfg.Dir)
	sess = &session{
		cfg:    cfg,
		logger: logger,
		store:  store,
		runner: runner.NewRunner(newBackend(cfg, logger), store, &runner.Config{
			Spinner:    !cfg.NoSpinner,
			SpinnerOut: cmd.ErrOrStderr(),
			Headers:    cfg.Headers,
			Logger:     logger,
		}),
	}
	return nil
}

// applyFlags lets explicitly set flags win over config and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("env-file") {
		cfg.EnvFile = envFileFlag
	}
	if flags.Changed("no-color") {
		cfg.NoColor = noColorFlag
	}
	if flags.Changed("no-spinner") {
		cfg.NoSpinner = noSpinnerFlag
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verboseFlag
	}
	if flags.Changed("output") {
		cfg.Output = outputFlag
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, v, bt string) int {
	version = v
	buildTime = bt

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return ExitSuccess
	}
	if cmd == nil {
		cmd = rootCmd
	}

	if sess != nil && sess.cfg.Output == config.OutputJSON {
		if ferr := output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout())).FormatError(err); ferr == nil {
			return exitCode(err)
		}
	}

	noColor := noColorFlag || (sess != nil && sess.cfg.NoColor)
	output.NewPrinter(output.WithNoColor(noColor)).PrintError(cmd.ErrOrStderr(), err, Hint(err))
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "Collection directory (default .wave) (env: WAVE_DIR)")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", "", "Load variables from a .env file (env: WAVE_ENV_FILE)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("WAVE_CONFIG", ""), "Path to config file (default <dir>/config.yaml) (env: WAVE_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output (env: WAVE_NO_COLOR)")
	rootCmd.PersistentFlags().BoolVar(&noSpinnerFlag, "no-spinner", false, "Disable the progress spinner (env: WAVE_NO_SPINNER)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", getEnvBool("WAVE_DEBUG", false), "Log request details to stderr, same as log_level: debug (env: WAVE_DEBUG)")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	for _, m := range []http.Method{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rootCmd.AddCommand(newRequestCmd(m))
	}
	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		return val == "yes"
	}
	return defaultVal
}
