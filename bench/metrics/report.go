package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LatencyStats summarizes a latency sample.
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// StageARow is one index-build measurement.
type StageARow struct {
	WidthBits   int
	Count       int
	BuildDurMs  float64
	ItemsPerSec float64
	HeapAllocMB float64
}

// StageBRow is one per-query search latency measurement.
type StageBRow struct {
	WidthBits  int
	Count      int
	MaxDist    int
	QueryP50Ms float64
	QueryP99Ms float64
	QueryAvgMs float64
}

// StageCRow is one end-to-end grouping measurement.
type StageCRow struct {
	Count           int
	MaxDist         int
	Workers         int
	GroupDurMs      float64
	Groups          int
	PlantedRecalled bool
	HeapSysMB       float64
	GCCount         uint32
}

// Percentile returns the p-th percentile (0-100) of a sorted sample.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// LatencyStatsFromDurations computes P50/P95/P99 from a duration sample.
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

// WriteStageACSV writes the stage A report.
func WriteStageACSV(rows []StageARow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"WidthBits", "Count", "BuildDurMs", "ItemsPerSec", "HeapAllocMB"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.WidthBits),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.2f", r.BuildDurMs),
			fmt.Sprintf("%.0f", r.ItemsPerSec),
			fmt.Sprintf("%.2f", r.HeapAllocMB),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteStageBCSV writes the stage B report.
func WriteStageBCSV(rows []StageBRow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"WidthBits", "Count", "MaxDist", "QueryP50Ms", "QueryP99Ms", "QueryAvgMs"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.WidthBits),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.MaxDist),
			fmt.Sprintf("%.4f", r.QueryP50Ms),
			fmt.Sprintf("%.4f", r.QueryP99Ms),
			fmt.Sprintf("%.4f", r.QueryAvgMs),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteStageCCSV writes the stage C report.
func WriteStageCCSV(rows []StageCRow, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"Count", "MaxDist", "Workers", "GroupDurMs", "Groups", "PlantedRecalled", "HeapSysMB", "GCCount"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.MaxDist),
			fmt.Sprintf("%d", r.Workers),
			fmt.Sprintf("%.2f", r.GroupDurMs),
			fmt.Sprintf("%d", r.Groups),
			fmt.Sprintf("%t", r.PlantedRecalled),
			fmt.Sprintf("%.2f", r.HeapSysMB),
			fmt.Sprintf("%d", r.GCCount),
		})
	}
	w.Flush()
	return w.Error()
}

// ReportDir is the report output directory.
const ReportDir = "report"

// ReportPath builds a dated report path under ReportDir.
func ReportPath(prefix string) string {
	return filepath.Join(ReportDir, prefix+time.Now().Format("20060102")+".csv")
}
