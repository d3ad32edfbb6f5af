package main

import (
	"fmt"

	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/plugins/objectstats"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <project>",
		Short: "Summarize the objects in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := project.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (version %d, saved %s)\n", args[0], doc.Version, doc.SavedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out, objectstats.Summary(doc, 0))
			for _, r := range doc.Objects {
				name := r.Name
				if name == "" {
					name = "-"
				}
				fmt.Fprintf(out, "  %s  %-9s %s\n", r.ID, r.Type, name)
			}
			return nil
		},
	}
}
