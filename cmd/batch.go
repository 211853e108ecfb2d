package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/ingest"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Manifest lists the securities of a batch.
type Manifest struct {
	Parallel   int        `yaml:"parallel"`
	Securities []Security `yaml:"securities"`
}

// Security is the input of a single reconstruction in a batch.
type Security struct {
	Name      string        `yaml:"name"`
	Shares    float64       `yaml:"shares"`
	Currency  string        `yaml:"currency"`
	Prices    ingest.Source `yaml:"prices"`
	Dividends ingest.Source `yaml:"dividends"`
	Splits    ingest.Source `yaml:"splits"`
}

// DecodeManifest decodes a YAML manifest. Relative paths are resolved against dir.
func DecodeManifest(r io.Reader, dir string) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	for i := range m.Securities {
		s := &m.Securities[i]
		if s.Name == "" {
			return nil, fmt.Errorf("invalid manifest: security #%d has no name", i+1)
		}
		if !(s.Shares > 0) {
			return nil, fmt.Errorf("invalid manifest: %s: shares must be positive, got %v", s.Name, s.Shares)
		}
		if s.Prices.Path == "" {
			return nil, fmt.Errorf("invalid manifest: %s: missing price history", s.Name)
		}
		for _, src := range []*ingest.Source{&s.Prices, &s.Dividends, &s.Splits} {
			if src.Path != "" && !filepath.IsAbs(src.Path) {
				src.Path = filepath.Join(dir, src.Path)
			}
		}
	}
	return &m, nil
}

// Runs reads the histories of every security.
func (m *Manifest) Runs() ([]costbasis.Run, error) {
	runs := make([]costbasis.Run, 0, len(m.Securities))
	for _, s := range m.Securities {
		prices, err := ingest.Prices(s.Prices)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		dividends := costbasis.Dividends{}
		if s.Dividends.Path != "" {
			if dividends, err = ingest.Dividends(s.Dividends); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Name, err)
			}
		}
		splits := costbasis.Splits{}
		if s.Splits.Path != "" {
			if splits, err = ingest.Splits(s.Splits); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Name, err)
			}
		}
		runs = append(runs, costbasis.Run{
			Name:     s.Name,
			Prices:   prices,
			Timeline: costbasis.Merge(dividends, splits),
			Shares:   s.Shares,
		})
	}
	return runs, nil
}

type batchCmd struct{}

func (*batchCmd) Name() string     { return "batch" }
func (*batchCmd) Synopsis() string { return "display the cost basis of several securities" }
func (*batchCmd) Usage() string {
	return `batch <manifest.yaml>

  Reconstructs, concurrently, the history of every security listed in the
  manifest, and displays their cost basis. See 'topic batch'.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {}

func (c *batchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "batch requires exactly one manifest file")
		return subcommands.ExitUsageError
	}
	file := f.Arg(0)
	r, err := os.Open(file)
	if err != nil {
		return fail(err)
	}
	defer r.Close()

	m, err := DecodeManifest(r, filepath.Dir(file))
	if err != nil {
		return fail(err)
	}
	runs, err := m.Runs()
	if err != nil {
		return fail(err)
	}
	log.Debug().Int("securities", len(runs)).Int("parallel", m.Parallel).Msg("reconstructing")

	all, err := costbasis.ReconstructAll(ctx, runs, m.Parallel)
	if err != nil {
		return fail(err)
	}
	items := make([]renderer.CostBasis, len(all))
	for i, s := range all {
		items[i] = renderer.CostBasis{Name: m.Securities[i].Name, Currency: m.Securities[i].Currency, Series: s}
	}
	printMarkdown(renderer.BatchMarkdown(items))
	return subcommands.ExitSuccess
}
