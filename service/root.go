// Package service is the blogengine command line: it wires configuration,
// logging and a store into the command loop and manages the local database.
package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blogengine/config"
	"blogengine/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is reported by the version command.
var Version = "0.1.0"

// options holds the persistent flags and what the root command derives
// from them before any subcommand runs.
type options struct {
	configFile    string
	store         string
	badgerPath    string
	backupDir     string
	mongoURI      string
	mongoDatabase string
	logLevel      string
	logFormat     string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "blogengine",
		Short: "Command driven blog engine",
		Long: `Blogengine reads blog commands from standard input and keeps users,
posts and their comments in a document store.

Commands read by "run":
  register <userName> <email>
  post <blogName> <userName> <title> <postBody> <tags> [timestamp]
  comment <blogName> <permalink> <userName> <commentBody> [timestamp]
  delete <blogName> <permalink> <userName> [timestamp]
  find <blogName> <searchString>
  show <blogName>
  exit`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file")
	flags.StringVar(&opts.store, "store", "", "store driver: badger, mongo or memory")
	flags.StringVar(&opts.badgerPath, "badger-path", "", "badger database directory")
	flags.StringVar(&opts.backupDir, "backup-dir", "", "directory for badger backups")
	flags.StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI")
	flags.StringVar(&opts.mongoDatabase, "mongo-database", "", "MongoDB database name")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newInitCmd(opts),
		newCleanCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// load reads the config file, lets explicitly set flags override it and
// validates the result.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("store", &cfg.Store.Driver, o.store)
	override("badger-path", &cfg.Store.Badger.Path, o.badgerPath)
	override("backup-dir", &cfg.Store.Badger.BackupDir, o.backupDir)
	override("mongo-uri", &cfg.Store.Mongo.URI, o.mongoURI)
	override("mongo-database", &cfg.Store.Mongo.Database, o.mongoDatabase)
	override("log-level", &cfg.Logging.Level, o.logLevel)
	override("log-format", &cfg.Logging.Format, o.logFormat)

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger.New(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogengine %s\n", Version)
		},
	}
}
