package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/resilience"
	"github.com/spf13/cobra"
)

// BenchResult summarises a bench run.
type BenchResult struct {
	Requests   int           `json:"requests"`
	IDs        int           `json:"ids"`
	Duplicates int           `json:"duplicates"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	PerSecond  float64       `json:"ids_per_second"`
}

func newBenchCommand(node port.IDNode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Request IDs concurrently from one or more servers and check they are unique",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs, _ := cmd.Flags().GetStringSlice("targets")
			if len(addrs) == 0 {
				addr, _ := cmd.Flags().GetString("addr")
				addrs = []string{addr}
			}
			workers, _ := cmd.Flags().GetInt("workers")
			requests, _ := cmd.Flags().GetInt("requests")
			batch, _ := cmd.Flags().GetInt("batch")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			res, err := runBench(cmd.Context(), node, addrs, workers, requests, batch, timeout)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if res.Duplicates > 0 {
				return fmt.Errorf("found %d duplicate ids", res.Duplicates)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("targets", nil, "servers to spread requests over (defaults to --addr)")
	cmd.Flags().Int("workers", 8, "concurrent callers")
	cmd.Flags().Int("requests", 1000, "total calls")
	cmd.Flags().Int("batch", 1, "IDs per call; above 1 uses NextBatch")
	return cmd
}

func runBench(ctx context.Context, node port.IDNode, addrs []string, workers, requests, batch int, timeout time.Duration) (*BenchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no targets")
	}
	if requests <= 0 || batch <= 0 {
		return nil, fmt.Errorf("requests and batch must be positive")
	}

	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, requests*batch)
		dups int
	)
	record := func(ids ...uint64) {
		mu.Lock()
		defer mu.Unlock()
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				dups++
				continue
			}
			seen[id] = struct{}{}
		}
	}

	start := time.Now()
	pool := resilience.NewWorkerPool(ctx, workers, workers*2)
	var submitErr error
	for i := 0; i < requests; i++ {
		addr := addrs[i%len(addrs)]
		job := func(ctx context.Context) error {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			if batch == 1 {
				id, err := node.Next(callCtx, addr)
				if err != nil {
					return fmt.Errorf("next from %s: %w", addr, err)
				}
				record(id)
				return nil
			}
			ids, err := node.NextBatch(callCtx, addr, batch)
			if err != nil {
				return fmt.Errorf("batch from %s: %w", addr, err)
			}
			record(ids...)
			return nil
		}
		if submitErr = pool.Submit(ctx, job); submitErr != nil {
			break
		}
	}
	// A failed job cancels the pool, so its error takes precedence.
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}

	elapsed := time.Since(start)
	res := &BenchResult{
		Requests:   requests,
		IDs:        len(seen) + dups,
		Duplicates: dups,
		Elapsed:    elapsed,
	}
	if elapsed > 0 {
		res.PerSecond = float64(res.IDs) / elapsed.Seconds()
	}
	return res, nil
}

func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return context.WithTimeout(ctx, timeout)
}
