package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/retailsim/internal/action"
	"github.com/metalagman/retailsim/internal/canonical"
	"github.com/metalagman/retailsim/internal/session"
	"github.com/metalagman/retailsim/internal/world"
)

func replayCmd() *cobra.Command {
	var snapshotPath, trajectoryPath, outPath string

	cmd := &cobra.Command{
		Use:          "replay",
		Short:        "apply a trajectory to a snapshot and emit the end state",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := world.LoadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			trajectory, err := action.LoadTrajectory(trajectoryPath)
			if err != nil {
				return err
			}

			sess := session.New(snapshot, action.NewRegistry())
			for _, act := range trajectory {
				res := sess.Step(act)
				if res.Handled && res.Err != nil {
					log.Debug().Str("action", act.Name).Err(res.Err).Msg("trajectory action failed")
				}
			}

			rendered, err := canonical.Bytes(sess.State())
			if err != nil {
				return fmt.Errorf("render end state: %w", err)
			}
			digest, err := canonical.Digest(sess.State())
			if err != nil {
				return fmt.Errorf("hash end state: %w", err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, append(rendered, '\n'), 0o644); err != nil {
					return fmt.Errorf("write end state: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "initial world snapshot file (json or yaml)")
	cmd.Flags().StringVar(&trajectoryPath, "trajectory", "", "trajectory file (json or yaml)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the canonical end state to this file instead of stdout")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("trajectory")

	return cmd
}
