package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ic-timon/hamdex/hamming"
	"github.com/ic-timon/hamdex/indexer"
	"github.com/ic-timon/hamdex/indexer/store"
)

var cmdGroup = &cobra.Command{
	Use:   "group [flags]",
	Short: "Group near-duplicate fingerprints in a dataset",
	Long: `
The "group" command loads a fingerprint dataset, builds the multi-index and
prints every group of mutual near-duplicates within the distance threshold,
one group per line as space-separated positions (or a JSON array of arrays
with --json). Items without any neighbor within the threshold are not
printed.

EXIT STATUS
===========

Exit status is 0 if the command was successful, even when no groups were
found. Exit status is 1 if there was a fatal error.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGroup(groupOptions)
	},
}

// GroupOptions bundles all options for the group command.
type GroupOptions struct {
	Input    string
	Distance int
	Workers  int
	JSON     bool
}

var groupOptions GroupOptions

func init() {
	cmdRoot.AddCommand(cmdGroup)

	f := cmdGroup.Flags()
	f.StringVar(&groupOptions.Input, "input", "", "dataset path (see 'hamdex gen')")
	f.IntVar(&groupOptions.Distance, "distance", 5, "maximum Hamming distance within a group")
	f.IntVar(&groupOptions.Workers, "workers", 0, "neighbor-discovery workers (default: GOMAXPROCS)")
	f.BoolVar(&groupOptions.JSON, "json", false, "print groups as JSON")
	cmdGroup.MarkFlagRequired("input")
}

func runGroup(opts GroupOptions) error {
	ds, err := store.Open(opts.Input)
	if err != nil {
		return err
	}
	defer ds.Close()

	log.Infof("dataset: %d fingerprints, %d bits wide", ds.Header.Count, ds.Header.WidthBits)
	if ds.Header.Count == 0 {
		return nil
	}

	var groups [][]uint32
	switch ds.Header.WidthBits {
	case store.Width64:
		hashes, err := ds.Hash64s()
		if err != nil {
			return err
		}
		groups = groupHashes(hashes, opts)
	case store.Width256:
		hashes, err := ds.Hash256s()
		if err != nil {
			return err
		}
		groups = groupHashes(hashes, opts)
	}

	log.Infof("found %d groups", len(groups))
	return printGroups(groups, opts.JSON)
}

func groupHashes[F hamming.Fingerprint[F]](hashes []F, opts GroupOptions) [][]uint32 {
	var zero F
	if ceiling := zero.Layout().MaxDistance; opts.Distance > ceiling {
		log.Warnf("distance %d exceeds the %d-bit encoding's full-recall ceiling of %d; some near duplicates may be missed",
			opts.Distance, zero.Layout().Bits(), ceiling)
	}

	t0 := time.Now()
	idx := indexer.New(hashes)
	log.Infof("index built in %s", time.Since(t0))

	cfg := indexer.DefaultConfig()
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	t1 := time.Now()
	groups := indexer.FindGroupsConfig(idx, opts.Distance, cfg)
	log.Infof("grouping took %s (%d workers)", time.Since(t1), cfg.Workers)
	return groups
}

func printGroups(groups [][]uint32, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(groups)
	}
	var sb strings.Builder
	for _, g := range groups {
		sb.Reset()
		for i, id := range g {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatUint(uint64(id), 10))
		}
		fmt.Println(sb.String())
	}
	return nil
}
