package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/notallowed/internal/denylist"
	"github.com/ppiankov/notallowed/internal/model"
)

// Version is set via ldflags
var Version = "dev"

// ErrBanned is returned by check when the verdict is "banned"
var ErrBanned = errors.New("value is banned")

// app carries state shared by all subcommands of one root command
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree with fresh flag state
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "notallowed",
		Short: "notallowed - check values against banned lists",
		Long: `notallowed checks usernames, emails, words and phrases, bank accounts and
IP addresses against banned lists.

Usernames, bank accounts and IPs match exactly (case-insensitive).
Emails match by whole address or by "@domain" entries.
Words match when a listed word or phrase appears anywhere in the value.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.notallowed/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("backend", model.BackendEmbedded, "list backend (embedded, dir, redis)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding <category>.txt lists (dir backend)")

	// Bind flags to viper
	_ = a.v.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = a.v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(a),
		newBatchCmd(a),
		newListCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "notallowed %s\n", Version)
		},
	}
}

// initConfig reads in config file and ENV variables
func (a *app) initConfig() error {
	setDefaults(a.v, model.DefaultConfig())

	if a.cfgFile != "" {
		// Use config file from the flag
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".notallowed"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	// Read in environment variables that match NOTALLOWED_*
	a.v.SetEnvPrefix("NOTALLOWED")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else if a.verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", a.v.ConfigFileUsed())
	}

	return nil
}

// setDefaults registers every config key so env vars and Unmarshal see them
func setDefaults(v *viper.Viper, cfg model.Config) {
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("optional_files", cfg.OptionalFiles)
	v.SetDefault("redis.addr", cfg.Redis.Addr)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.prefix", cfg.Redis.Prefix)
	v.SetDefault("redis.timeout", cfg.Redis.Timeout)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.json", cfg.Output.JSON)
}

// config returns the effective configuration
func (a *app) config() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := a.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = model.DefaultConfig().DataDir
	}
	return cfg, nil
}

// logger returns a development logger in verbose mode, a no-op one otherwise
func (a *app) logger() *zap.Logger {
	if !a.verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// registry builds a registry from the effective configuration. The returned
// cleanup function must be called when done.
func (a *app) registry() (*denylist.Registry, model.Config, func(), error) {
	cfg, err := a.config()
	if err != nil {
		return nil, cfg, nil, err
	}

	sources, closeSources, err := cfg.BuildSources()
	if err != nil {
		return nil, cfg, nil, err
	}

	log := a.logger()
	r := denylist.New(sources, denylist.WithLogger(log))

	cleanup := func() {
		_ = closeSources()
		_ = log.Sync()
	}

	return r, cfg, cleanup, nil
}
