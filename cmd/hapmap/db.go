package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/hapmap/internal/config"
	"github.com/inodb/hapmap/internal/duckdb"
	"github.com/inodb/hapmap/internal/output"
	"github.com/inodb/hapmap/internal/profile"
)

func newDBCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect results persisted with run --db",
		Example: `  hapmap db report --db hapmap.duckdb           # print both haplotype maps
  hapmap db profiles --db hapmap.duckdb Y        # dump stored Y profiles
  hapmap db clear --db hapmap.duckdb             # remove all stored data`,
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "DuckDB file (default: db.path from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Print the stored haplotype maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(store *duckdb.Store, cfg *config.Config) error {
				return runDBReport(cmd.OutOrStdout(), store, cfg)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "profiles <locus>",
		Short: "Print the stored profiles of a locus as label/sequence lines",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(store *duckdb.Store, cfg *config.Config) error {
				c, err := store.LoadCollection(args[0])
				if err != nil {
					return err
				}
				return profile.WriteCollection(cmd.OutOrStdout(), c)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all stored profiles, sites and runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(store *duckdb.Store, cfg *config.Config) error {
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared", store.Path())
				return nil
			})
		},
	})

	return cmd
}

// withStore opens an existing database, from the flag or db.path, and runs fn.
func withStore(dbPath string, fn func(*duckdb.Store, *config.Config) error) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return usageError{err}
	}
	if dbPath == "" {
		dbPath = cfg.DB.Path
	}
	if dbPath == "" {
		return usageError{errors.New("no database: pass --db or set db.path")}
	}
	if _, err := os.Stat(dbPath); err != nil {
		return inputError(err)
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store, cfg)
}

func runDBReport(w io.Writer, store *duckdb.Store, cfg *config.Config) error {
	for i, locus := range []config.Locus{cfg.Loci.MT, cfg.Loci.Y} {
		r, err := store.LookupSites(locus.Label)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		sw, _ := output.NewSiteWriter(cfg.Output.Format, w)
		if err := output.WriteReport(sw, r); err != nil {
			return fmt.Errorf("print report: %w", err)
		}
		fmt.Fprintln(w)
	}
	return nil
}
