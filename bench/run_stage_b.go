package main

import (
	"fmt"
	"time"

	"github.com/ic-timon/hamdex/bench/gen"
	"github.com/ic-timon/hamdex/bench/metrics"
	"github.com/ic-timon/hamdex/indexer"
)

// Stage B measures single-query latency across distance thresholds. The
// interesting transition is threshold/Chunks crossing 1: below it only the
// exact-match buckets are probed, at or above it every single-bit-flip
// bucket is probed per chunk, multiplying the probe fanout.
func runStageB() {
	const count = 500_000
	const queryRuns = 1000

	maxDists := []int{2, 5, 8, 10, 15}

	hashes := gen.RandomHash64s(count+queryRuns, 12345)
	queries := hashes[count : count+queryRuns]
	hashes = hashes[:count]

	fmt.Printf("stage B: building index over %d fingerprints...\n", count)
	idx := indexer.New(hashes)
	searcher := indexer.NewSearcher(idx)

	var rows []metrics.StageBRow
	for _, maxDist := range maxDists {
		durations := make([]time.Duration, queryRuns)
		for i, q := range queries {
			t0 := time.Now()
			searcher.Search(q, maxDist)
			durations[i] = time.Since(t0)
		}
		stats := metrics.LatencyStatsFromDurations(durations)
		rows = append(rows, metrics.StageBRow{
			WidthBits:  64,
			Count:      count,
			MaxDist:    maxDist,
			QueryP50Ms: stats.P50Ms,
			QueryP99Ms: stats.P99Ms,
			QueryAvgMs: stats.AvgMs,
		})
		fmt.Printf("  maxDist=%d P50=%.4fms P99=%.4fms\n", maxDist, stats.P50Ms, stats.P99Ms)
	}

	path := metrics.ReportPath("bench_report_stage_b_")
	if err := metrics.WriteStageBCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}
