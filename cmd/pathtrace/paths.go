package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danpedrabranca/netbox/model"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List every linked termination able to originate a path",
	RunE:  runEndpoints,
}

func runEndpoints(cmd *cobra.Command, args []string) error {
	inv, _, cleanup, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	for _, t := range inv.Endpoints() {
		fmt.Printf("%s:%d\n", t.ObjectType(), t.ObjectID())
	}
	return nil
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Trace and print the path from every linked termination",
	RunE:  runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, tracer, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, t := range inv.Endpoints() {
		path, err := tracer.Trace(ctx, []model.Termination{t})
		if err != nil {
			return fmt.Errorf("trace from %s:%d: %w", t.ObjectType(), t.ObjectID(), err)
		}
		if path == nil {
			continue
		}
		if err := inv.SavePath(path); err != nil {
			return err
		}
	}

	for _, p := range inv.Paths() {
		printPath(inv, p)
	}
	return nil
}
