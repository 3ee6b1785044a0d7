package bench

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/metrics"
)

// ProgressBufferMultiplier sizes the progress channel per strategy so that
// a slow display rarely makes a run skip updates.
const ProgressBufferMultiplier = 5

// progressSteps is how many progress updates a run sends at most.
const progressSteps = 100

// cancelCheckInterval is how many multiplications run between context checks.
const cancelCheckInterval = 256

var tracer = otel.Tracer("github.com/agbru/ecurve/internal/bench")

// Options controls a benchmark.
type Options struct {
	// Iterations is the number of multiplications per strategy.
	Iterations int
	// Workers bounds how many strategies run at once; 0 means no bound.
	Workers int
	// Seed selects the operand sequence.
	Seed uint64
}

// ExecuteBenchmarks runs every strategy over the same operand pairs and
// returns one result per strategy, in input order.
//
// Strategies run concurrently, sharing the field's Montgomery context. A
// failing strategy does not stop the others; cancelling ctx stops all of
// them and their results carry the context error. Progress updates go to
// progressReporter, and finished runs are recorded in collector when it is
// non-nil.
func ExecuteBenchmarks(ctx context.Context, strategies []field.Strategy, f *field.Field, opts Options, progressReporter ProgressReporter, collector *metrics.Collector, out io.Writer) []Result {
	ctx, span := tracer.Start(ctx, "bench.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("field", f.Name()),
		attribute.Int("iterations", opts.Iterations),
		attribute.Int("strategies", len(strategies)),
	)

	pairs := Operands(f, opts.Iterations, opts.Seed)
	results := make([]Result, len(strategies))
	progressChan := make(chan ProgressUpdate, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	mem := metrics.NewMemoryCollector()
	for i, s := range strategies {
		idx, strategy := i, s
		g.Go(func() error {
			before := mem.Snapshot()
			res := runStrategy(ctx, idx, strategy, f, pairs, progressChan)
			collector.Observe(metrics.Run{
				Strategy: res.Name,
				Field:    f.Name(),
				Bits:     f.Bits(),
				Ops:      res.Ops,
				Duration: res.Duration,
				Alloc:    mem.Snapshot().Since(before),
				Err:      res.Err,
			})
			results[idx] = res
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runStrategy(ctx context.Context, idx int, s field.Strategy, f *field.Field, pairs []Pair, progressChan chan<- ProgressUpdate) Result {
	ctx, span := tracer.Start(ctx, "bench.strategy")
	defer span.End()
	span.SetAttributes(attribute.String("strategy", s.Name()))

	res := Result{Name: s.Name()}
	digest := xxhash.New()
	buf := make([]byte, 0, 4*f.Words())
	step := max(len(pairs)/progressSteps, 1)

	start := time.Now()
	for i, pair := range pairs {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				res.Err = err
				break
			}
		}
		prod, err := s.Mul(f, pair.A, pair.B)
		if err != nil {
			res.Err = fmt.Errorf("%s: multiplication %d: %w", s.Name(), i, err)
			break
		}
		buf = buf[:0]
		for _, w := range prod {
			buf = binary.LittleEndian.AppendUint32(buf, w)
		}
		_, _ = digest.Write(buf)
		res.Ops++
		if i == len(pairs)-1 {
			res.Last = prod.Hex()
		}
		if (i+1)%step == 0 {
			sendProgress(progressChan, ProgressUpdate{Index: idx, Value: float64(i+1) / float64(len(pairs))})
		}
	}
	res.Duration = time.Since(start)
	res.Digest = digest.Sum64()

	span.SetAttributes(attribute.Int("ops", res.Ops))
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	} else {
		sendProgress(progressChan, ProgressUpdate{Index: idx, Value: 1})
	}
	return res
}

// sendProgress never blocks; a full channel drops the update.
func sendProgress(progressChan chan<- ProgressUpdate, update ProgressUpdate) {
	select {
	case progressChan <- update:
	default:
	}
}
