package main

import (
	"context"
	"fmt"
	"os"

	"raypick/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded bench runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Time", "Name", "Ticks", "FPS", "Frame avg", "Raycast avg", "Hit rate", "Invalidations"})
			for _, r := range runs {
				s := r.Summary
				t.AppendRow(table.Row{
					r.ID,
					r.CreatedAt.Format("2006-01-02T15:04:05"),
					r.Name,
					r.Ticks,
					fmt.Sprintf("%.1f", s.FPS),
					s.FrameAvg,
					s.RaycastAvg,
					fmt.Sprintf("%.1f%%", s.HitRate*100),
					s.Invalidations,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	return cmd
}
