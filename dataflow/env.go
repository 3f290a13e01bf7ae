package dataflow

import (
	"context"
	"hash/maphash"
	"io"
	"log/slog"
	"runtime"

	"github.com/hupe1980/graphflow/resource"
	"golang.org/x/sync/errgroup"
)

// Env is the execution environment shared by the collections of one job.
type Env struct {
	parallelism int
	ctrl        *resource.Controller
	logger      *slog.Logger
	seed        maphash.Seed
}

// Option configures an Env.
type Option func(*Env)

// WithParallelism sets the number of partitions produced by keyed operators
// and the number of partition tasks run at once. Values < 1 are ignored.
func WithParallelism(n int) Option {
	return func(e *Env) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithController makes every partition task hold a worker slot of c while it
// runs. Useful to cap the total concurrency of several jobs.
func WithController(c *resource.Controller) Option {
	return func(e *Env) {
		e.ctrl = c
	}
}

// WithLogger configures debug logging of executed stages.
// Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(e *Env) {
		e.logger = l
	}
}

// NewEnv creates an execution environment.
// The default parallelism is runtime.GOMAXPROCS(0).
func NewEnv(optFns ...Option) *Env {
	e := &Env{
		parallelism: runtime.GOMAXPROCS(0),
		seed:        maphash.MakeSeed(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(e)
		}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Parallelism returns the configured parallelism.
func (e *Env) Parallelism() int {
	return e.parallelism
}

// Logger returns the environment logger.
func (e *Env) Logger() *slog.Logger {
	return e.logger
}

// run executes task once per partition index in [0, n).
// The first error cancels the remaining tasks and is returned.
func (e *Env) run(ctx context.Context, stage string, n int, task func(ctx context.Context, p int) error) error {
	e.logger.DebugContext(ctx, "dataflow stage", "stage", stage, "partitions", n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for p := range n {
		g.Go(func() error {
			if err := e.ctrl.AcquireWorker(gctx); err != nil {
				return err
			}
			defer e.ctrl.ReleaseWorker()

			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, p)
		})
	}
	return g.Wait()
}

// partitionOf maps a key to a bucket in [0, n).
func partitionOf[K comparable](seed maphash.Seed, k K, n int) int {
	return int(maphash.Comparable(seed, k) % uint64(n))
}
