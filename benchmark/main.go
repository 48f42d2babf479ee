// Package main provides a performance benchmarking tool for the Perfgate CLI.
// It measures execution times across different sample file sizes and command
// types, running each test multiple times, treating the first run against a
// fresh store as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - perfgate binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated sample files and SQLite stores
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	SampleSize int
	Command    string
	ColdTime   string
	WarmTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	SampleSizes []int
	Resamples   int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		Runs:        4,
		SampleSizes: []int{100, 1_000, 10_000, 100_000},
		Resamples:   10_000,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the perfgate binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if perfgate is available
	if _, err := exec.LookPath("perfgate"); err != nil {
		return fmt.Errorf("perfgate binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("failed to create work dir %s: %w", config.WorkDir, err)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured sample sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sample sizes, %v timeout, %d runs each, %d resamples\n",
		len(config.SampleSizes), config.Timeout, config.Runs, config.Resamples)

	for _, size := range config.SampleSizes {
		fmt.Printf("Benchmarking %d samples\n", size)

		samplesPath, err := writeSampleFile(config.WorkDir, size)
		if err != nil {
			fmt.Printf("Failed to generate sample file: %v\n", err)
			continue
		}
		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%d.db", size))
		_ = os.Remove(dbPath)

		// Standalone analysis
		result := runBenchmarkSuite(config, size, "analyze", samplesPath, dbPath)
		results = append(results, result)

		// Promote once so detect has a baseline to compare against
		promote := exec.Command("perfgate", "baseline", "promote", samplesPath,
			"--baseline-backend", "sqlite", "--baseline-db-connect", dbPath)
		if output, err := promote.CombinedOutput(); err != nil {
			fmt.Printf("  Promote failed: %v\nOutput: %s\n", err, string(output))
			continue
		}

		// Baseline comparison
		result = runBenchmarkSuite(config, size, "detect", samplesPath, dbPath)
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs repeated timed invocations of one command,
// reporting the first run as cold and the average of the rest as warm.
func runBenchmarkSuite(config BenchmarkConfig, size int, command, samplesPath, dbPath string) BenchmarkResult {
	fmt.Printf("Running %s on %d samples\n", command, size)

	cold, times := runBenchmark(config, command, samplesPath, dbPath)

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}
	warmStr := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmStr = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

	return BenchmarkResult{
		SampleSize: size,
		Command:    command,
		ColdTime:   coldStr,
		WarmTime:   warmStr,
	}
}

// runBenchmark executes a perfgate command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command, samplesPath, dbPath string) (coldTime float64, warmTimes []float64) {
	args := []string{command, samplesPath,
		"--resamples", fmt.Sprintf("%d", config.Resamples),
		"--baseline-backend", "sqlite",
		"--baseline-db-connect", dbPath,
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("perfgate", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// writeSampleFile generates a harness-format JSON sample file of the
// requested size with deterministic Gaussian noise.
func writeSampleFile(workDir string, size int) (string, error) {
	rng := rand.New(rand.NewPCG(uint64(size), 0))
	samples := make([]float64, size)
	for i := range samples {
		samples[i] = 100 + rng.NormFloat64()*5
	}

	payload := map[string]any{
		"benchmark_id": fmt.Sprintf("synthetic-%d", size),
		"unit":         "duration-ms",
		"samples":      samples,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	path := filepath.Join(workDir, fmt.Sprintf("samples_%d.json", size))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/perfgate_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"sample_size", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		row := []string{fmt.Sprintf("%d", result.SampleSize), result.Command, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Analyze:")
	printCommandSummary(results, "detect", "Detect:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %8d samples: Cold: %s, Warm: %s\n", result.SampleSize, result.ColdTime, result.WarmTime)
		}
	}
}
