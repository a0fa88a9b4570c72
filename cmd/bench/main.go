package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/i5heu/GoEventQueue/internal/queue"
	"github.com/i5heu/GoEventQueue/internal/testbench"
	"github.com/i5heu/GoEventQueue/pkg/chanqueue"
	"github.com/i5heu/GoEventQueue/pkg/config"
	"github.com/i5heu/GoEventQueue/pkg/eventqueue"
	"github.com/i5heu/GoEventQueue/pkg/ringqueue"
	"github.com/i5heu/GoEventQueue/pkg/syncqueue"
)

// benchQueue is the surface every benchmarked implementation provides.
type benchQueue = queue.Core[*int]

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation      string  `json:"implementation"`
	NumProducers        int     `json:"num_producers"`
	NumConsumers        int     `json:"num_consumers"`
	NumMessages         int64   `json:"num_messages"`          // produced count
	NumMessagesConsumed int64   `json:"num_messages_consumed"` // consumed count
	NumEvictions        int64   `json:"num_evictions"`         // oldest elements dropped by full writes
	EvictionRate        float64 `json:"eviction_rate"`         // evictions / produced
	QueueCapacity       int     `json:"queue_capacity"`
	TestDuration        string  `json:"test_duration"`       // e.g. "10s"
	ActualElapsed       string  `json:"actual_elapsed"`      // measured time
	Throughput          float64 `json:"throughput_msgs_sec"` // based on consumed count
	Timestamp           int64   `json:"timestamp"`
	GoVersion           string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU            int     `json:"num_cpu"`
	TrueCPU           int     `json:"true_cpu,omitempty"`
	SimulatedCPUCount int     `json:"simulated_cpu_count,omitempty"`
	CPUModel          string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz       float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH            string  `json:"go_arch"`
	TotalMemory       uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// Implementation represents a queue implementation.
type Implementation[T any, Q queue.Core[T]] struct {
	name        string
	description string
	pkgName     string
	authors     []string
	features    []string
	newQueue    func(capacity int) Q
}

// outputMarkdownTable loads the JSON file and outputs a Markdown table.
func outputMarkdownTable(jsonFile string) {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file %q: %v\n", jsonFile, err)
		os.Exit(1)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions found in JSON.")
		os.Exit(1)
	}
	// Use the last session for the table.
	lastSession := sessions[len(sessions)-1]
	// Build a map of implementation meta info.
	implMetaMap := make(map[string]Implementation[*int, benchQueue])
	for _, impl := range getImplementations() {
		implMetaMap[impl.name] = impl
	}
	// Build table rows.
	type tableRow struct {
		implementation string
		pkgName        string
		features       string
		author         string
		throughput     float64
		evictionRate   float64
	}
	var rows []tableRow
	for _, bench := range lastSession.Benchmarks {
		meta, ok := implMetaMap[bench.Implementation]
		var pkgName, features, authors string
		if ok {
			pkgName = meta.pkgName
			features = strings.Join(meta.features, ", ")
			authors = strings.Join(meta.authors, ", ")
		}
		rows = append(rows, tableRow{
			implementation: bench.Implementation,
			pkgName:        pkgName,
			features:       features,
			author:         authors,
			throughput:     bench.Throughput,
			evictionRate:   bench.EvictionRate,
		})
	}
	// Sort rows by throughput descending.
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].throughput > rows[j].throughput
	})
	fmt.Println("## Last Session Benchmark Summary")
	fmt.Println()
	fmt.Println("| Implementation           | Package         | Features                    | Author                      | Throughput (msgs/sec) | Eviction Rate |")
	fmt.Println("|--------------------------|-----------------|-----------------------------|-----------------------------|-----------------------|---------------|")
	for _, r := range rows {
		fmt.Printf("| %-24s | %-15s | %-27s | %-27s | %21.0f | %13.3f |\n",
			r.implementation, r.pkgName, r.features, r.author, r.throughput, r.evictionRate)
	}
}

func main() {
	// Flags.
	testIterations := flag.Int("iter", 5, "Number of test iterations per concurrency setting")
	cpuMaxFlag := flag.Int("cpu", 0, "If non-zero, test only that GOMAXPROCS value; if 0, test common CPU/vCPU values up to runtime.NumCPU()")
	jsonExport := flag.Bool("json", false, "Export results as JSON to test-results.json")
	highConcurrency := flag.Bool("high-concurrency", false, "Include high concurrency configurations")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from test-results.json and exit")
	jsonFileForMarkdown := flag.String("jsonfile", "test-results.json", "Path to JSON file for markdown table")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	capacityFlag := flag.Int("capacity", 1024, "Queue capacity; writes beyond it evict the oldest element")
	scenarioFile := flag.String("scenarios", "", "Path to a YAML file with custom producer/consumer scenarios")
	flag.Parse()

	if *markdownTable {
		outputMarkdownTable(*jsonFileForMarkdown)
		return
	}

	if *capacityFlag < 1 {
		fmt.Fprintf(os.Stderr, "Capacity must be at least 1, got %d\n", *capacityFlag)
		os.Exit(1)
	}

	trueCpuCount := runtime.NumCPU()
	var cpuSettings []int
	// Define the common CPU/vCPU settings.
	commonCPUs := []int{1, 2, 3, 4, 6, 8, 12, 16, 32, 48, 56, 64, 96, 128, 192, 256, 384, 512}

	if *cpuMaxFlag > 0 {
		desired := *cpuMaxFlag
		if desired > trueCpuCount {
			desired = trueCpuCount
		}
		cpuSettings = []int{desired}
	} else {
		for _, v := range commonCPUs {
			if v <= trueCpuCount {
				cpuSettings = append(cpuSettings, v)
			}
		}
	}

	// Define concurrency scenarios, either from the YAML file or the defaults.
	var scenarios []config.Scenario
	if *scenarioFile != "" {
		var err error
		scenarios, err = config.Load(*scenarioFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		scenarios = config.DefaultScenarios(*highConcurrency)
	}

	// Test duration for each iteration.
	testDuration := 5 * time.Second

	// Calculate total number of tests for progress tracking.
	impls := getImplementations()
	totalTests := len(cpuSettings) * len(scenarios) * (*testIterations) * len(impls)

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	var allSessions []FullReport

	// Iterate over the desired GOMAXPROCS settings.
	for _, cpus := range cpuSettings {
		runtime.GOMAXPROCS(cpus)
		sysInfo := gatherSystemInfo()
		sysInfo.NumCPU = cpus
		sysInfo.TrueCPU = trueCpuCount
		sysInfo.SimulatedCPUCount = cpus

		// Print CPU header to stdout.
		fmt.Printf("\n=============================\n")
		fmt.Printf("GOMAXPROCS = %d\n", cpus)
		fmt.Printf("=============================\n")

		var results []BenchmarkResult

		// Loop over each concurrency scenario.
		for _, sc := range scenarios {
			fmt.Printf("  [Concurrency: producers=%d, consumers=%d]                                  \n", sc.NumProducers, sc.NumConsumers)
			for iteration := 1; iteration <= *testIterations; iteration++ {
				fmt.Printf("    iteration %d/%d                                                      \n", iteration, *testIterations)
				// For each iteration, run each queue implementation.
				for _, impl := range impls {
					runtime.GC()
					q := impl.newQueue(*capacityFlag)
					time.Sleep(250 * time.Millisecond)

					produced, evicted, consumed, actualTime := testbench.RunTimedTest(
						q,
						sc,
						testDuration,
						func(i int) *int {
							v := i
							return &v
						},
					)
					throughput := float64(consumed) / actualTime.Seconds()
					var evictionRate float64
					if produced > 0 {
						evictionRate = float64(evicted) / float64(produced)
					}
					timestamp := time.Now().Unix()

					// Print test result to stdout.
					fmt.Printf("    %s => produced=%d, evicted=%d, consumed=%d, throughput=%.0f msg/s, took=%v\n",
						impl.name, produced, evicted, consumed, throughput, actualTime)

					if bar != nil {
						bar.Add(1)
					}

					result := BenchmarkResult{
						Implementation:      impl.name,
						NumProducers:        sc.NumProducers,
						NumConsumers:        sc.NumConsumers,
						NumMessages:         produced,
						NumMessagesConsumed: consumed,
						NumEvictions:        evicted,
						EvictionRate:        evictionRate,
						QueueCapacity:       *capacityFlag,
						TestDuration:        testDuration.String(),
						ActualElapsed:       actualTime.String(),
						Throughput:          throughput,
						Timestamp:           timestamp,
						GoVersion:           runtime.Version(),
					}
					results = append(results, result)
				}
			}
		}

		sessionTime := time.Now().Format(time.RFC3339)
		fr := FullReport{
			SessionTime: sessionTime,
			SystemInfo:  sysInfo,
			Benchmarks:  results,
		}
		allSessions = append(allSessions, fr)
	}

	// After all tests, finish the progress bar so its line is not overwritten.
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	// If JSON export is requested, append the new sessions to test-results.json.
	if *jsonExport {
		const filename = "test-results.json"
		var previous []FullReport
		if _, err := os.Stat(filename); err == nil {
			data, err := os.ReadFile(filename)
			if err == nil && len(data) > 0 {
				json.Unmarshal(data, &previous)
			}
		}
		updated := append(previous, allSessions...)
		data, err := json.MarshalIndent(updated, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error marshalling JSON:", err)
			os.Exit(1)
		}
		if err = os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing JSON file:", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote results to %s\n", filename)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	numCPU := runtime.NumCPU()
	goArch := runtime.GOARCH

	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      numCPU,
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      goArch,
		TotalMemory: totalMemory,
	}
}

// getImplementations enumerates our different queue implementations.
func getImplementations() []Implementation[*int, benchQueue] {
	return []Implementation[*int, benchQueue]{
		{
			name:        "Slice Event Queue",
			pkgName:     "eventqueue",
			description: "A slice-backed queue behind a mutex, eviction shifts the whole slice so full-queue writes are O(n).",
			authors:     []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:    []string{"MPMC", "FIFO", "Evicting", "Mutex", "Deterministic-Evictions"},
			newQueue: func(capacity int) benchQueue {
				return syncqueue.New[*int](eventqueue.MustNew[*int](capacity))
			},
		},
		{
			name:        "Ring Event Queue",
			pkgName:     "ringqueue",
			description: "A fixed ring buffer behind a mutex, head and count arithmetic keeps eviction O(1).",
			authors:     []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:    []string{"MPMC", "FIFO", "Evicting", "Ring", "Mutex", "Deterministic-Evictions"},
			newQueue: func(capacity int) benchQueue {
				return syncqueue.New[*int](ringqueue.MustNew[*int](capacity))
			},
		},
		{
			name:        "Channel Event Queue",
			pkgName:     "chanqueue",
			description: "Works with standard go channels, a full send retries after stealing one element, so eviction counts drift under contention.",
			authors:     []string{"Mia Heidenstedt <heidenstedt.org>"},
			features:    []string{"MPMC", "FIFO", "Evicting", "Channel"},
			newQueue: func(capacity int) benchQueue {
				return chanqueue.MustNew[*int](capacity)
			},
		},
	}
}
