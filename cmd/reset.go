package cmd

import (
	"fmt"

	"parking-cli/parking"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every booking for the next two-week period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			grid := parking.NewGrid()
			recorder.GridReset()
			if err := persist(ctx, store, grid); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Parking system reset complete.")
			return nil
		},
	}

	return cmd
}
