package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/ic-timon/hamdex/bench/gen"
	"github.com/ic-timon/hamdex/bench/metrics"
	"github.com/ic-timon/hamdex/indexer"
)

// Stage C runs the full batch pipeline at the million-item scale: build,
// parallel neighbor discovery, clustering. A cluster of 5 near duplicates is
// planted at random positions; the run only counts if one output group
// recalls all of them.
func runStageC(opts stageOpts) {
	const count = 1_000_000
	const maxDist = 5
	const plantSize = 5

	workerList := []int{1, 2, 4, runtime.GOMAXPROCS(0)}
	if opts.workers > 0 {
		workerList = []int{opts.workers}
	}

	rng := rand.New(rand.NewSource(777))
	hashes := gen.RandomHash64s(count, 777)
	planted := gen.Plant64(hashes, plantSize, rng)
	fmt.Printf("stage C: planted cluster at %v\n", planted)

	t0 := time.Now()
	idx := indexer.New(hashes)
	fmt.Printf("  build took %.0fms\n", float64(time.Since(t0).Nanoseconds())/1e6)

	var rows []metrics.StageCRow
	for _, workers := range workerList {
		metrics.GC()
		before := metrics.Take()

		cfg := indexer.DefaultConfig()
		cfg.Workers = workers
		t1 := time.Now()
		groups := indexer.FindGroupsConfig(idx, maxDist, cfg)
		groupDur := time.Since(t1)

		after := metrics.Take()
		_, gcDelta := metrics.Diff(before, after)

		rows = append(rows, metrics.StageCRow{
			Count:           count,
			MaxDist:         maxDist,
			Workers:         workers,
			GroupDurMs:      float64(groupDur.Nanoseconds()) / 1e6,
			Groups:          len(groups),
			PlantedRecalled: plantedRecalled(groups, planted),
			HeapSysMB:       float64(after.HeapSys) / 1024 / 1024,
			GCCount:         gcDelta,
		})
		r := rows[len(rows)-1]
		fmt.Printf("  workers=%d group=%.0fms groups=%d recalled=%t\n",
			workers, r.GroupDurMs, r.Groups, r.PlantedRecalled)
	}

	path := metrics.ReportPath("bench_report_stage_c_")
	if err := metrics.WriteStageCCSV(rows, path); err != nil {
		panic(err)
	}
	fmt.Printf("report written to %s\n", path)
}

// plantedRecalled reports whether a single group contains every planted
// position.
func plantedRecalled(groups [][]uint32, planted []int) bool {
	for _, g := range groups {
		members := make(map[uint32]struct{}, len(g))
		for _, id := range g {
			members[id] = struct{}{}
		}
		all := true
		for _, p := range planted {
			if _, ok := members[uint32(p)]; !ok {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
