package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/retailsim/internal/action"
	"github.com/metalagman/retailsim/internal/score"
	"github.com/metalagman/retailsim/internal/session"
	"github.com/metalagman/retailsim/internal/world"
)

func scoreCmd() *cobra.Command {
	var snapshotPath, trajectoryPath, groundTruthPath string

	cmd := &cobra.Command{
		Use:          "score",
		Short:        "replay an agent trajectory and score it against ground truth",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			snapshot, err := world.LoadSnapshot(snapshotPath)
			if err != nil {
				return err
			}
			trajectory, err := action.LoadTrajectory(trajectoryPath)
			if err != nil {
				return err
			}
			groundTruth, err := action.LoadTrajectory(groundTruthPath)
			if err != nil {
				return err
			}

			opts := score.Options{Match: cfg.Scoring.Match, Mismatch: cfg.Scoring.Mismatch}
			sess := session.NewWithOptions(snapshot, action.NewRegistry(), opts)
			for _, act := range trajectory {
				res := sess.Step(act)
				if res.Handled && res.Err != nil {
					log.Debug().Str("action", act.Name).Err(res.Err).Msg("trajectory action failed")
				}
			}

			reward := sess.Reward(groundTruth)
			log.Info().
				Int("trajectory_actions", len(trajectory)).
				Int("ground_truth_actions", len(groundTruth)).
				Float64("reward", reward).
				Msg("scored trajectory")
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(reward, 'f', 1, 64))
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "initial world snapshot file (json or yaml)")
	cmd.Flags().StringVar(&trajectoryPath, "trajectory", "", "agent trajectory file (json or yaml)")
	cmd.Flags().StringVar(&groundTruthPath, "ground-truth", "", "ground-truth trajectory file (json or yaml)")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("trajectory")
	_ = cmd.MarkFlagRequired("ground-truth")

	return cmd
}
