package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metalagman/retailsim/internal/action"
	"github.com/metalagman/retailsim/internal/world"
)

func validateCmd() *cobra.Command {
	var snapshotPath, trajectoryPath string

	cmd := &cobra.Command{
		Use:          "validate",
		Short:        "schema-check a snapshot and/or trajectory file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if snapshotPath == "" && trajectoryPath == "" {
				return fmt.Errorf("nothing to validate: pass --snapshot and/or --trajectory")
			}
			if snapshotPath != "" {
				if _, err := world.LoadSnapshot(snapshotPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "snapshot ok: %s\n", snapshotPath)
			}
			if trajectoryPath != "" {
				if _, err := action.LoadTrajectory(trajectoryPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "trajectory ok: %s\n", trajectoryPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "world snapshot file (json or yaml)")
	cmd.Flags().StringVar(&trajectoryPath, "trajectory", "", "trajectory file (json or yaml)")

	return cmd
}
