package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/hapmap/internal/config"
	"github.com/inodb/hapmap/internal/duckdb"
	"github.com/inodb/hapmap/internal/output"
	"github.com/inodb/hapmap/internal/pipeline"
	"github.com/inodb/hapmap/internal/profile"
	"github.com/inodb/hapmap/internal/snp"
	"github.com/inodb/hapmap/internal/textclean"
)

type runOptions struct {
	profiles     bool
	fromProfiles bool
	print        bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <input-file> | run --from-profiles <mtDNA-profiles> <Y-profiles>",
		Short: "Build haplotype maps from a genetic data file",
		Long: `Read a genetic data file, split it into mtDNA and Y chromosome profiles,
call SNPs for each locus and write an aligned haplotype map per locus.

With --from-profiles the extraction step is skipped and the two profile files
written by an earlier run --profiles are read instead.`,
		Example: `  hapmap run "GeneticData - 5.txt"
  hapmap run -o results --profiles input.txt
  hapmap run --format tab --print input.txt
  cat input.txt | hapmap run -
  hapmap run --from-profiles mtDNA.txt Ychrom.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			n := 1
			if opts.fromProfiles {
				n = 2
				if opts.profiles {
					return usageError{errors.New("--profiles cannot be combined with --from-profiles")}
				}
			}
			if err := cobra.ExactArgs(n)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return usageError{err}
			}
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			return runHapmap(cmd, args, cfg, opts, logger)
		},
	}

	cmd.Flags().StringP("output-dir", "o", ".", "Directory for haplotype map files")
	cmd.Flags().StringP("format", "f", "aligned", "Output format: aligned, tab")
	cmd.Flags().String("encoding", textclean.EncodingLatin1, "Input encoding: latin1, utf-8")
	cmd.Flags().String("db", "", "Persist profiles and sites to this DuckDB file")
	cmd.Flags().Int("workers", 1, "Workers per locus for SNP calling (0 = all CPUs)")
	cmd.Flags().BoolVar(&opts.profiles, "profiles", false, "Also write the intermediate per-locus profile files")
	cmd.Flags().BoolVar(&opts.fromProfiles, "from-profiles", false, "Read mtDNA and Y profile files instead of a genetic data file")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Print the haplotype maps to stdout")

	viper.BindPFlag("output.dir", cmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("input.encoding", cmd.Flags().Lookup("encoding"))
	viper.BindPFlag("db.path", cmd.Flags().Lookup("db"))
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runHapmap(cmd *cobra.Command, inputs []string, cfg *config.Config, opts runOptions, logger *zap.Logger) error {
	p := pipeline.New(cfg.Extractor())
	p.SetWorkers(cfg.Workers)
	p.SetLogger(logger)

	var res *pipeline.Result
	if opts.fromProfiles {
		mt, err := readProfiles(inputs[0], cfg.Loci.MT.Label)
		if err != nil {
			return err
		}
		y, err := readProfiles(inputs[1], cfg.Loci.Y.Label)
		if err != nil {
			return err
		}
		logger.Info("read profiles", zap.Int("mt_records", mt.Len()), zap.Int("y_records", y.Len()))
		if res, err = p.CallLoci(cmd.Context(), mt, y); err != nil {
			return err
		}
	} else {
		lines, err := textclean.ReadFile(inputs[0], cfg.Input.Encoding)
		if err != nil {
			return inputError(err)
		}
		if res, err = p.Run(cmd.Context(), lines); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	loci := []config.Locus{cfg.Loci.MT, cfg.Loci.Y}
	for i, c := range res.Collections() {
		if opts.profiles {
			path := filepath.Join(cfg.Output.Dir, loci[i].Profile)
			if err := writeFile(path, func(w io.Writer) error { return profile.WriteCollection(w, c) }); err != nil {
				return fmt.Errorf("write profiles: %w", err)
			}
			logger.Info("wrote profiles", zap.String("locus", c.Locus), zap.String("path", path))
		}
	}

	for i, r := range res.Reports() {
		path := filepath.Join(cfg.Output.Dir, loci[i].Report)
		if err := writeReportFile(path, cfg.Output.Format, r); err != nil {
			return err
		}
		logger.Info("wrote haplotype map",
			zap.String("locus", r.Locus),
			zap.Int("sites", len(r.Sites)),
			zap.String("path", path))

		if opts.print {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nContents of %s:\n", loci[i].Report)
			sw, _ := output.NewSiteWriter(cfg.Output.Format, out)
			if err := output.WriteReport(sw, r); err != nil {
				return fmt.Errorf("print report: %w", err)
			}
			fmt.Fprintln(out)
		}
	}

	if cfg.DB.Path != "" {
		if err := persist(cfg.DB.Path, inputs, res, logger); err != nil {
			return err
		}
	}

	return nil
}

func writeReportFile(path, format string, r *snp.Report) error {
	return writeFile(path, func(w io.Writer) error {
		sw, ok := output.NewSiteWriter(format, w)
		if !ok {
			return fmt.Errorf("unknown output format %q", format)
		}
		if err := output.WriteReport(sw, r); err != nil {
			return fmt.Errorf("write haplotype map: %w", err)
		}
		return nil
	})
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func inputError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w (check that the file path is correct)", err)
	}
	return err
}

// readProfiles reads a label/sequence profile file for one locus.
func readProfiles(path, locus string) (*profile.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, inputError(err)
	}
	defer f.Close()

	c, err := profile.ReadCollection(f, locus)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}

// persist stores collections, reports and the input fingerprints in DuckDB.
// Stdin inputs are not fingerprinted.
func persist(dbPath string, inputs []string, res *pipeline.Result, logger *zap.Logger) error {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, c := range res.Collections() {
		if err := store.WriteCollection(c); err != nil {
			return err
		}
	}
	for _, r := range res.Reports() {
		if err := store.WriteReport(r); err != nil {
			return err
		}
	}

	for _, path := range inputs {
		if path == "-" {
			continue
		}
		fp, err := duckdb.StatFile(path)
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		prev, ok, err := store.LastRun(path)
		switch {
		case err != nil:
			logger.Warn("could not look up previous run", zap.String("path", path), zap.Error(err))
		case ok && prev.Matches(fp):
			logger.Info("input unchanged since last run", zap.String("path", path))
		}
		if err := store.RecordRun(fp, time.Now()); err != nil {
			return err
		}
	}
	logger.Info("persisted results", zap.String("db", dbPath))
	return nil
}
