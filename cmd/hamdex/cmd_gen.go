package main

import (
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ic-timon/hamdex/bench/gen"
	"github.com/ic-timon/hamdex/indexer/store"
)

var cmdGen = &cobra.Command{
	Use:   "gen [flags]",
	Short: "Generate a synthetic fingerprint dataset",
	Long: `
The "gen" command writes a dataset of uniform random fingerprints with
near-duplicate clusters planted at random positions. It exists to exercise
the "group" command and the index at scale without scanning real images.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(genOptions)
	},
}

// GenOptions bundles all options for the gen command.
type GenOptions struct {
	Out         string
	Count       int
	Width       int
	Seed        int64
	Clusters    int
	ClusterSize int
}

var genOptions GenOptions

func init() {
	cmdRoot.AddCommand(cmdGen)

	f := cmdGen.Flags()
	f.StringVar(&genOptions.Out, "out", "", "output dataset path")
	f.IntVar(&genOptions.Count, "count", 100000, "number of fingerprints")
	f.IntVar(&genOptions.Width, "width", 64, "fingerprint width in bits (64 or 256)")
	f.Int64Var(&genOptions.Seed, "seed", 1, "random seed")
	f.IntVar(&genOptions.Clusters, "clusters", 1, "number of planted near-duplicate clusters")
	f.IntVar(&genOptions.ClusterSize, "cluster-size", 5, "members per planted cluster")
	cmdGen.MarkFlagRequired("out")
}

func runGen(opts GenOptions) error {
	if opts.Count <= 0 {
		return errors.New("--count must be positive")
	}
	if opts.Clusters*opts.ClusterSize > opts.Count {
		return errors.New("planted clusters do not fit in --count")
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	switch opts.Width {
	case 64:
		hashes := gen.RandomHash64s(opts.Count, opts.Seed)
		for i := 0; i < opts.Clusters; i++ {
			positions := gen.Plant64(hashes, opts.ClusterSize, rng)
			log.Infof("planted cluster %d at %v", i, positions)
		}
		if err := store.CreateHash64s(opts.Out, hashes); err != nil {
			return err
		}
	case 256:
		hashes := gen.RandomHash256s(opts.Count, opts.Seed)
		for i := 0; i < opts.Clusters; i++ {
			positions := gen.Plant256(hashes, opts.ClusterSize, rng)
			log.Infof("planted cluster %d at %v", i, positions)
		}
		if err := store.CreateHash256s(opts.Out, hashes); err != nil {
			return err
		}
	default:
		return errors.Errorf("unsupported width %d, want 64 or 256", opts.Width)
	}

	log.Infof("wrote %d %d-bit fingerprints to %s", opts.Count, opts.Width, opts.Out)
	return nil
}
