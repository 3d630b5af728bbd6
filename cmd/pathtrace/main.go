package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danpedrabranca/netbox/core"
	"github.com/danpedrabranca/netbox/internal/logging"
	"github.com/danpedrabranca/netbox/internal/observability"
)

var topologyFile string

var rootCmd = &cobra.Command{
	Use:   "pathtrace",
	Short: "Trace physical cable paths through a documented topology",
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&topologyFile, "topology", "t", "topology.yaml", "topology fixture file (YAML or JSON)")
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(pathsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the topology fixture and wires the engine with logging,
// metrics, and span export configured from the environment.
func setup(ctx context.Context) (*core.Inventory, *core.PathTracer, func(), error) {
	log := logging.NewFromEnv()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init tracing: %w", err)
	}
	cleanup := func() { observability.ShutdownWithTimeout(ctx, shutdown, log) }

	collector, err := observability.NewTraceCollector(nil)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("init metrics: %w", err)
	}

	inv := core.NewInventory()
	inv.SetMetricsRecorder(collector)

	summary, err := core.LoadTopologyFile(inv, topologyFile)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	log.Info(ctx, "loaded topology",
		logging.String("file", topologyFile),
		logging.Int("terminations", summary.Terminations),
		logging.Int("cables", summary.Cables),
		logging.Int("wireless_links", summary.WirelessLinks),
	)

	tracer := core.NewPathTracer(inv, inv)
	tracer.Log = log
	tracer.Metrics = collector
	return inv, tracer, cleanup, nil
}

// printPath renders one traced path with its flags and total length.
func printPath(inv *core.Inventory, p *core.CablePath) {
	flags := ""
	if p.IsComplete {
		flags += " complete"
	}
	if p.IsActive {
		flags += " active"
	}
	if p.IsSplit {
		flags += " split"
	}
	if flags == "" {
		flags = " partial"
	}

	fmt.Printf("path #%d (%d segments,%s)\n", p.ID, p.SegmentCount(), flags)
	for _, hop := range p.Path {
		fmt.Printf("  %s\n", formatHop(hop))
	}

	total, definitive, err := p.TotalLength(inv)
	switch {
	case err != nil:
		fmt.Printf("  length: error: %v\n", err)
	case total == nil:
		fmt.Printf("  length: unknown\n")
	case definitive:
		fmt.Printf("  length: %s m\n", total.String())
	default:
		fmt.Printf("  length: at least %s m (some cables unmeasured)\n", total.String())
	}

	if p.IsSplit {
		candidates, err := p.SplitCandidates(inv)
		if err == nil && len(candidates) > 0 {
			fmt.Printf("  split candidates:")
			for _, fp := range candidates {
				fmt.Printf(" frontport:%d(pos %d)", fp.ID, fp.RearPortPosition)
			}
			fmt.Println()
		}
	}
}

func formatHop(hop core.HopGroup) string {
	s := ""
	for i, node := range hop {
		if i > 0 {
			s += ", "
		}
		s += string(node)
	}
	return s
}
