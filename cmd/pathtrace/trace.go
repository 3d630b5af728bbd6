package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danpedrabranca/netbox/core"
	"github.com/danpedrabranca/netbox/model"
)

var traceFrom string

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace the physical path from one termination",
	Long: `Trace walks the cable chain from a termination, following
pass-through ports and circuit hops until it reaches a far-end
endpoint, a split, or a break.

Examples:
  # Trace from interface 1
  pathtrace trace -t topology.yaml --from interface:1

  # Trace from a front port
  pathtrace trace -t topology.yaml --from frontport:20`,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&traceFrom, "from", "", "origin termination as type:id (required)")
	_ = traceCmd.MarkFlagRequired("from")
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, tracer, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ot, id, err := core.PathNode(traceFrom).Decode()
	if err != nil {
		return fmt.Errorf("bad --from value %q: %w", traceFrom, err)
	}
	origin, err := inv.Termination(ot, id)
	if err != nil {
		return err
	}

	path, err := tracer.Trace(ctx, []model.Termination{origin})
	if err != nil {
		return err
	}
	if path == nil {
		fmt.Printf("%s has no link; no path exists\n", traceFrom)
		return nil
	}
	if err := inv.SavePath(path); err != nil {
		return err
	}
	printPath(inv, path)
	return nil
}
