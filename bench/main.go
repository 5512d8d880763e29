// Benchmark entry point: -stage a|b|c
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ic-timon/hamdex/bench/metrics"
)

type stageOpts struct {
	workers int
}

func main() {
	stage := flag.String("stage", "", "benchmark stage: a (index build) | b (query latency) | c (grouping at scale)")
	workers := flag.Int("workers", 0, "neighbor-discovery workers, 0 = GOMAXPROCS (stage c only)")
	flag.Parse()
	fmt.Printf("hardware popcount: %t\n", metrics.PopcountHardware())
	opts := stageOpts{workers: *workers}
	switch *stage {
	case "a":
		runStageA()
	case "b":
		runStageB()
	case "c":
		runStageC(opts)
	default:
		log.Fatalf("specify -stage a|b|c")
	}
	fmt.Println("benchmark complete")
}
