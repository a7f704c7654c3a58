package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func meetingURLCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "meeting-url",
		Short: "Generate a video meeting URL from the stored configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				url, err := a.meetings.GenerateMeetingURL(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
				return nil
			})
		},
	}
}

func verifyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute network center counts and report drift",
		Long:  "Compares every network's center count with the centers that reference it.\nThe persisted snapshot is checked as read from storage, before counts are\nrecomputed on load. The store is never written.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				drift, err := a.records.VerifyCenterCounts(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(drift) == 0 {
					fmt.Fprintf(out, "center counts consistent across %d networks\n", len(a.records.Networks()))
					return nil
				}
				for _, d := range drift {
					fmt.Fprintf(out, "network %s (%s): stored %d, actual %d\n", d.Code, d.NetworkID, d.Stored, d.Actual)
				}
				return fmt.Errorf("%d networks have drifted center counts", len(drift))
			})
		},
	}
}

func seedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all master records with the built-in fixtures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				if err := a.seed(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d networks and %d centers\n", len(a.records.Networks()), len(a.records.Centers()))
				return nil
			})
		},
	}
}
