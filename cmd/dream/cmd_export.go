package main

import (
	"fmt"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		width, height int
		background    string
	)
	cmd := &cobra.Command{
		Use:   "export <project> <png>",
		Short: "Render a project to a PNG image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := setup("-")
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			doc, err := project.LoadFile(args[0])
			if err != nil {
				return err
			}
			store := canvas.NewStore(scene.NewLayer("content"))
			if err := project.Restore(doc, store); err != nil {
				return err
			}

			if width <= 0 {
				width = cfg.Editor.CanvasWidth
			}
			if height <= 0 {
				height = cfg.Editor.CanvasHeight
			}
			if err := scene.Export(args[1], width, height, background, store.Layer()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d object(s) to %s\n", store.Len(), args[1])
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "png-width", 0, "Image width (default canvas width)")
	cmd.Flags().IntVar(&height, "png-height", 0, "Image height (default canvas height)")
	cmd.Flags().StringVar(&background, "background", "#FFFFFF", "Background color")
	return cmd
}
