package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/ebitensource"
)

func newViewCmd(a *app) *cobra.Command {
	var width, height int
	var trace, fps bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window on the scene and deliver live input to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, agent, err := a.loadAgent()
			if err != nil {
				return err
			}
			if trace {
				agent.SetEntityStore(traceStore{w: cmd.OutOrStdout()})
			}
			if width == 0 {
				width = int(scene.Root.Width)
			}
			if height == 0 {
				height = int(scene.Root.Height)
			}
			defer agent.Close()
			return ebitensource.Run(agent, ebitensource.RunConfig{
				Title:   "bough - " + a.Scene,
				Width:   width,
				Height:  height,
				ShowFPS: fps,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Window width (default: root width)")
	cmd.Flags().IntVar(&height, "height", 0, "Window height (default: root height)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every dispatched hook")
	cmd.Flags().BoolVar(&fps, "fps", false, "Show FPS and TPS")
	return cmd
}

var _ bough.EntityStore = traceStore{}
