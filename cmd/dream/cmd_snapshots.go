package main

import (
	"fmt"
	"path/filepath"

	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/storage"
	"github.com/spf13/cobra"
)

func newSnapshotsCmd() *cobra.Command {
	var (
		limit   int
		restore uint
	)
	cmd := &cobra.Command{
		Use:   "snapshots [project]",
		Short: "List stored snapshots, or restore one to a project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := setup("-")
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			store, err := storage.Open(cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				names, err := store.Projects(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			name, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			if restore > 0 {
				snap, doc, err := store.Load(ctx, restore)
				if err != nil {
					return err
				}
				if err := project.SaveFile(args[0], doc); err != nil {
					return err
				}
				fmt.Fprintf(out, "restored snapshot #%d (%d object(s)) to %s\n", snap.ID, snap.ObjectCount, args[0])
				return nil
			}

			snaps, err := store.List(ctx, name, limit)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintf(out, "no snapshots for %s\n", name)
				return nil
			}
			for _, s := range snaps {
				fmt.Fprintf(out, "#%-5d %s  %-12s %d object(s)\n", s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Label, s.ObjectCount)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of snapshots to list")
	cmd.Flags().UintVar(&restore, "restore", 0, "Snapshot id to write to the project file")
	return cmd
}
