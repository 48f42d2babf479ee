package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/perfgate/perfgate/schema"
	"gonum.org/v1/gonum/stat"
)

// Bootstrap defaults and floors.
const (
	DefaultConfidence = 0.95
	DefaultResamples  = 10_000
	DefaultWorkers    = 4

	// MinResamples keeps empirical percentiles well defined for tight
	// confidence levels.
	MinResamples = 1000

	// bootstrapShardSize fixes how many resamples each shard computes.
	// Shard boundaries depend only on the resample count, so the worker
	// count never changes the result.
	bootstrapShardSize = 512
)

// BootstrapOptions configure a bootstrap estimation run.
type BootstrapOptions struct {
	Confidence float64 // Interval level in (0,1), default 0.95
	Resamples  int     // Bootstrap iterations, default 10000, floor 1000
	Seed       uint64  // Deterministic seed for the resampling RNG
	Workers    int     // Concurrent shard workers, default 4
}

// withDefaults fills unset optional fields.
func (o BootstrapOptions) withDefaults() BootstrapOptions {
	if o.Confidence == 0 {
		o.Confidence = DefaultConfidence
	}
	if o.Resamples == 0 {
		o.Resamples = DefaultResamples
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

// BootstrapEstimate computes direct summary statistics plus a
// percentile-bootstrap confidence interval for the mean.
//
// Resampling is sharded into fixed-size blocks, each with its own RNG
// seeded from the run seed and the shard index. Shards write to
// disjoint ranges of the resample-mean slice and the percentile is
// taken after a single sort, so the result is bit-identical for a given
// seed and input regardless of worker count. That determinism carries
// the reproducibility claims and is pinned by tests.
//
// The context is checked between shards; cancellation abandons the run
// with the context error. By default the loop runs to completion.
func BootstrapEstimate(ctx context.Context, set *schema.SampleSet, opts BootstrapOptions) (schema.SummaryStatistics, schema.ConfidenceInterval, error) {
	opts = opts.withDefaults()

	const op = "bootstrap"
	if opts.Resamples < MinResamples {
		return schema.SummaryStatistics{}, schema.ConfidenceInterval{},
			invalidParam(op, "resamples", opts.Resamples, fmt.Sprintf("must be >= %d", MinResamples))
	}
	if opts.Confidence <= 0 || opts.Confidence >= 1 {
		return schema.SummaryStatistics{}, schema.ConfidenceInterval{},
			invalidParam(op, "confidence", opts.Confidence, "must be in (0,1)")
	}
	if set.Len() < 2 {
		return schema.SummaryStatistics{}, schema.ConfidenceInterval{}, &SampleCountError{
			BenchmarkID: set.BenchmarkID,
			Op:          op,
			Required:    2,
			Got:         set.Len(),
		}
	}

	stats, err := Summarize(set)
	if err != nil {
		return schema.SummaryStatistics{}, schema.ConfidenceInterval{}, err
	}

	values := set.Values()
	means := make([]float64, opts.Resamples)
	shards := (opts.Resamples + bootstrapShardSize - 1) / bootstrapShardSize

	shardCh := make(chan int)
	var wg sync.WaitGroup
	for range opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for shard := range shardCh {
				if ctx.Err() != nil {
					continue // drain remaining shards after cancellation
				}
				resampleShard(values, means, shard, opts.Seed)
			}
		}()
	}
	for shard := range shards {
		shardCh <- shard
	}
	close(shardCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return schema.SummaryStatistics{}, schema.ConfidenceInterval{},
			fmt.Errorf("bootstrap for benchmark %q canceled: %w", set.BenchmarkID, err)
	}

	slices.Sort(means)
	lowerP := (1 - opts.Confidence) / 2
	upperP := opts.Confidence + lowerP
	interval := schema.ConfidenceInterval{
		Lower: stat.Quantile(lowerP, stat.Empirical, means, nil),
		Upper: stat.Quantile(upperP, stat.Empirical, means, nil),
		Level: opts.Confidence,
	}

	// Percentile intervals of the resample means contain the sample mean
	// for all but pathological inputs; widen to keep the
	// lower <= mean <= upper invariant unconditional.
	if interval.Lower > stats.Mean {
		interval.Lower = stats.Mean
	}
	if interval.Upper < stats.Mean {
		interval.Upper = stats.Mean
	}

	return stats, interval, nil
}

// resampleShard fills one fixed-size block of resample means. The shard
// RNG is derived as seed XOR shard index, never shared across shards.
func resampleShard(values, means []float64, shard int, seed uint64) {
	start := shard * bootstrapShardSize
	end := min(start+bootstrapShardSize, len(means))

	rng := rand.New(rand.NewPCG(seed^uint64(shard), uint64(shard)))
	n := len(values)
	for i := start; i < end; i++ {
		var sum float64
		for range n {
			sum += values[rng.IntN(n)]
		}
		means[i] = sum / float64(n)
	}
}
