package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "hamdex",
	Short: "Group near-duplicate fingerprints",
	Long: `
hamdex finds groups of near-duplicate image fingerprints. It builds an
in-memory multi-index over a batch of fixed-width fingerprints (64-bit
perceptual hashes or 256-bit PDQ hashes) and collapses all pairs within a
Hamming-distance threshold into disjoint groups.
`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(0)
	},
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
