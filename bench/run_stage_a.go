package main

import (
	"fmt"
	"time"

	"github.com/ic-timon/hamdex/bench/gen"
	"github.com/ic-timon/hamdex/bench/metrics"
	"github.com/ic-timon/hamdex/indexer"
)

// Stage A measures index construction throughput and memory across dataset
// sizes for both encodings.
func runStageA() {
	counts := []int{100_000, 500_000, 1_000_000}

	var rows []metrics.StageARow
	for _, count := range counts {
		// 64-bit
		{
			hashes := gen.RandomHash64s(count, 42)
			metrics.GC()
			t0 := time.Now()
			idx := indexer.New(hashes)
			buildDur := time.Since(t0)
			after := metrics.Take()
			rows = append(rows, stageARow(64, count, buildDur, after))
			_ = idx
		}
		// 256-bit
		{
			hashes := gen.RandomHash256s(count, 42)
			metrics.GC()
			t0 := time.Now()
			idx := indexer.New(hashes)
			buildDur := time.Since(t0)
			after := metrics.Take()
			rows = append(rows, stageARow(256, count, buildDur, after))
			_ = idx
		}
		r64, r256 := rows[len(rows)-2], rows[len(rows)-1]
		fmt.Printf("stage A: n=%d build64=%.0fms build256=%.0fms\n", count, r64.BuildDurMs, r256.BuildDurMs)
	}

	path := metrics.ReportPath("bench_report_stage_a_")
	if err := metrics.WriteStageACSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}

func stageARow(width, count int, buildDur time.Duration, after metrics.Snapshot) metrics.StageARow {
	ms := float64(buildDur.Nanoseconds()) / 1e6
	return metrics.StageARow{
		WidthBits:   width,
		Count:       count,
		BuildDurMs:  ms,
		ItemsPerSec: float64(count) / buildDur.Seconds(),
		HeapAllocMB: float64(after.HeapAlloc) / 1024 / 1024,
	}
}
