package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogengine/app/repositories"
	"blogengine/app/repositories/mongostore"
	"blogengine/config"

	"github.com/spf13/cobra"
)

var errCancelled = errors.New("operation cancelled")

// confirm asks a yes/no question; anything but y or Y is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

func requireBadger(cfg *config.Config) error {
	if cfg.Store.Driver != config.DriverBadger {
		return fmt.Errorf("this command needs the badger store, not '%s'", cfg.Store.Driver)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBadger(opts.cfg); err != nil {
				return err
			}
			dbPath := opts.cfg.Store.Badger.Path
			out := cmd.OutOrStdout()
			if exists(dbPath) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}
			if err := os.MkdirAll(dbPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			repo, err := repositories.NewRepository(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := repo.Close(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every user, post and comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch opts.cfg.Store.Driver {
			case config.DriverBadger:
				dbPath := opts.cfg.Store.Badger.Path
				if !exists(dbPath) {
					fmt.Fprintln(out, "Database is already clean (does not exist)")
					return nil
				}
				if !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(dbPath); err != nil {
					return fmt.Errorf("failed to clean database: %w", err)
				}
			case config.DriverMongo:
				if !confirm(cmd, fmt.Sprintf("Drop MongoDB database '%s'? This cannot be undone.", opts.cfg.Store.Mongo.Database)) {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				s, err := mongostore.Connect(cmd.Context(), opts.cfg.Store.Mongo.URI, opts.cfg.Store.Mongo.Database)
				if err != nil {
					return err
				}
				defer s.Close(cmd.Context())
				if err := s.Drop(cmd.Context()); err != nil {
					return fmt.Errorf("failed to clean database: %w", err)
				}
			default:
				fmt.Fprintln(out, "Nothing to clean: the memory store keeps no data")
				return nil
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
}

func newBackupCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBadger(opts.cfg); err != nil {
				return err
			}
			dbPath := opts.cfg.Store.Badger.Path
			if !exists(dbPath) {
				return fmt.Errorf("no database exists to backup at %s", dbPath)
			}

			backupDir := opts.cfg.Store.Badger.BackupDir
			if err := os.MkdirAll(backupDir, 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			repo, err := repositories.NewRepository(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer repo.Close()

			backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if _, err := repo.Backup(f); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}
			opts.logger.Debug().Str("file", backupFile).Msg("backup written")
			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
}

func newRestoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireBadger(opts.cfg); err != nil {
				return err
			}
			return restore(cmd, opts.cfg.Store.Badger.Path, args[0])
		},
	}
}

func restore(cmd *cobra.Command, dbPath, backupFile string) error {
	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if exists(dbPath) {
		if !confirm(cmd, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
			return errCancelled
		}
		if err := os.RemoveAll(dbPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := repositories.NewRepository(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	if err := repo.Load(f); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully")
	return nil
}
