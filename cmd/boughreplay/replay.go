package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bough"
)

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Run a JSON input script and print every dispatched hook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, agent, err := a.loadAgent()
			if err != nil {
				return err
			}
			script, err := bough.LoadScriptFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			agent.SetEntityStore(traceStore{w: out})
			script.OnLabel = func(label string) {
				fmt.Fprintf(out, "-- %s\n", label)
				bough.DumpTree(out, agent.Root())
			}
			script.Run(agent)
			return nil
		},
	}
}
