// Package config holds hapmap settings loaded through viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/inodb/hapmap/internal/profile"
	"github.com/inodb/hapmap/internal/textclean"
)

// DefaultIdentifiers is the allow-list of individuals in the Romanov data set.
var DefaultIdentifiers = []string{
	"Princess Irene",
	"Prince Fred",
	"Nicolas II Romanov",
	"Alexandra Romanov",
	"Olga Romanov",
	"Tatiana Romanov",
	"Maria Romanov",
	"Alexei Romanov",
	"Suspected body of Anastasia Romanov",
	"Anastasia1",
	"Anastasia2",
	"Anastasia3",
	"Anastasia4",
	"Anastasia4 son",
	"Anastasia5",
	"Farmers daughter",
	"Farmers grandson",
	"Grigori Rasputin",
}

// Locus describes how one locus is tagged in the input and labeled in reports.
type Locus struct {
	Tag     string `mapstructure:"tag"`
	Label   string `mapstructure:"label"`
	Profile string `mapstructure:"profile"` // intermediate profile file name
	Report  string `mapstructure:"report"`  // haplotype map file name
}

// Config is the full set of hapmap settings.
type Config struct {
	Identifiers []string `mapstructure:"identifiers"`
	Loci        struct {
		MT Locus `mapstructure:"mtdna"`
		Y  Locus `mapstructure:"y"`
	} `mapstructure:"loci"`
	Input struct {
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"input"`
	Output struct {
		Dir    string `mapstructure:"dir"`
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	Workers int `mapstructure:"workers"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("identifiers", DefaultIdentifiers)
	v.SetDefault("loci.mtdna.tag", profile.DefaultMTTag)
	v.SetDefault("loci.mtdna.label", "mtDNA")
	v.SetDefault("loci.mtdna.profile", "mtDNA.txt")
	v.SetDefault("loci.mtdna.report", "mtDNA_hapmap.txt")
	v.SetDefault("loci.y.tag", profile.DefaultYTag)
	v.SetDefault("loci.y.label", "Y")
	v.SetDefault("loci.y.profile", "Ychrom.txt")
	v.SetDefault("loci.y.report", "Y_hapmap.txt")
	v.SetDefault("input.encoding", textclean.EncodingLatin1)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.format", "aligned")
	v.SetDefault("db.path", "")
	v.SetDefault("workers", 1)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	c, err := Load(v)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks that the configuration can drive an extraction.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Identifiers) == 0 {
		errs = append(errs, errors.New("identifiers: allow-list is empty"))
	}
	if c.Loci.MT.Tag == "" || c.Loci.Y.Tag == "" {
		errs = append(errs, errors.New("loci: tags must not be empty"))
	} else if c.Loci.MT.Tag == c.Loci.Y.Tag {
		errs = append(errs, fmt.Errorf("loci: mtdna and y share tag %q", c.Loci.MT.Tag))
	}
	for _, id := range c.Identifiers {
		if id == c.Loci.MT.Tag || id == c.Loci.Y.Tag {
			errs = append(errs, fmt.Errorf("identifiers: %q collides with a locus tag", id))
		}
	}
	switch c.Output.Format {
	case "aligned", "tab":
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// Extractor builds a profile extractor from the configured allow-list and loci.
func (c *Config) Extractor() *profile.Extractor {
	e := profile.NewExtractor(c.Identifiers, c.Loci.MT.Tag, c.Loci.Y.Tag)
	e.SetLoci(c.Loci.MT.Label, c.Loci.Y.Label)
	return e
}
