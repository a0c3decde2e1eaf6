package stabilizer

import (
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/richinsley/goscope/wave"
)

// Precompute builds the index table for every buffer on a bounded worker
// pool, one channel per task. The per-frame loop carries a data dependency
// through the previous index, so there is no intra-channel parallelism.
// Results come back in input order regardless of completion order.
func Precompute(bufs []*wave.SampleBuffer, names []string, cfg Config) ([]IndexTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tables := make([]IndexTable, len(bufs))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, buf := range bufs {
		g.Go(func() error {
			log.Info("precomputing", "channel", names[i])
			start := time.Now()
			tables[i] = ComputeTable(buf, cfg)
			log.Info("finished precomputing", "channel", names[i],
				"frames", len(tables[i]), "elapsed", time.Since(start).Round(10*time.Millisecond))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
