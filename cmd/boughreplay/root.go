package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bough"
)

type app struct {
	Scene    string
	Settings string
	Debug    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "boughreplay",
		Short:        "Replay input against a bough scene",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Replay a script and print every dispatched hook
  boughreplay replay --scene ui.toml script.json

  # What is under a point?
  boughreplay hit --scene ui.toml 120 40

  # Print the effective settings as TOML
  boughreplay settings --settings input.toml
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bough.SetDebugMode(a.Debug)
			bough.SetLogger(log.New(cmd.ErrOrStderr(), "bough: ", 0))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.Scene, "scene", "", "Path to a TOML scene file")
	cmd.PersistentFlags().StringVar(&a.Settings, "settings", "", "Path to a TOML settings file (default: built-in settings)")
	cmd.PersistentFlags().BoolVar(&a.Debug, "debug", false, "Trace every delivery step to stderr")

	cmd.AddCommand(newReplayCmd(a))
	cmd.AddCommand(newHitCmd(a))
	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newSettingsCmd(a))
	cmd.AddCommand(newViewCmd(a))
	return cmd
}

func (a *app) loadSettings() (bough.Settings, error) {
	if a.Settings == "" {
		return bough.DefaultSettings(), nil
	}
	return bough.LoadSettings(a.Settings)
}

// loadAgent builds the scene and its agent.
func (a *app) loadAgent() (*bough.Scene, *bough.Agent, error) {
	if a.Scene == "" {
		return nil, nil, fmt.Errorf("--scene is required")
	}
	settings, err := a.loadSettings()
	if err != nil {
		return nil, nil, err
	}
	scene, err := bough.LoadScene(a.Scene)
	if err != nil {
		return nil, nil, err
	}
	return scene, bough.NewAgent(scene.Root, settings), nil
}

// traceStore prints every dispatched hook, one line each.
type traceStore struct {
	w io.Writer
}

func (s traceStore) EmitEvent(ev bough.InteractionEvent) {
	switch ev.Type {
	case bough.EventKeyPress, bough.EventKeyRelease:
		fmt.Fprintf(s.w, "%-11s %-12s key=%s text=%q\n", ev.Type, ev.Name, ev.Key, ev.Text)
	case bough.EventFocusIn, bough.EventFocusOut, bough.EventUngrab:
		fmt.Fprintf(s.w, "%-11s %s\n", ev.Type, ev.Name)
	case bough.EventWheel:
		fmt.Fprintf(s.w, "%-11s %-12s local=(%g,%g) delta=(%g,%g)\n", ev.Type, ev.Name, ev.LocalX, ev.LocalY, ev.DeltaX, ev.DeltaY)
	default:
		synth := ""
		if ev.Synthesized {
			synth = " synthesized"
		}
		fmt.Fprintf(s.w, "%-11s %-12s scene=(%g,%g) local=(%g,%g)%s\n",
			ev.Type, ev.Name, ev.SceneX, ev.SceneY, ev.LocalX, ev.LocalY, synth)
	}
}
