package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bough"
)

var classNames = map[string]bough.EventClass{
	"any":   bough.ClassAny,
	"mouse": bough.ClassMouse,
	"touch": bough.ClassTouch,
	"wheel": bough.ClassWheel,
	"hover": bough.ClassHover,
	"drop":  bough.ClassDrop,
}

func newHitCmd(a *app) *cobra.Command {
	var class string
	var all bool
	cmd := &cobra.Command{
		Use:   "hit <x> <y>",
		Short: "Print the items under a scene point, topmost first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse x: %w", err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse y: %w", err)
			}
			c, ok := classNames[class]
			if !ok {
				return fmt.Errorf("unknown class %q", class)
			}
			scene, _, err := a.loadAgent()
			if err != nil {
				return err
			}
			p := bough.Vec2{X: x, Y: y}
			var hits []*bough.Item
			if all {
				hits = bough.HitTestAll(scene.Root, p, c)
			} else if it := bough.HitTest(scene.Root, p, c); it != nil {
				hits = []*bough.Item{it}
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(nothing)")
				return nil
			}
			for _, it := range hits {
				local, _ := it.MapFromScene(p)
				fmt.Fprintf(cmd.OutOrStdout(), "%s local=(%g,%g)\n", it.Name, local.X, local.Y)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&class, "class", "any", "Event class (any|mouse|touch|wheel|hover|drop)")
	cmd.Flags().BoolVar(&all, "all", false, "Print every candidate, not just the topmost")
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the scene tree in paint order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, agent, err := a.loadAgent()
			if err != nil {
				return err
			}
			bough.DumpTree(cmd.OutOrStdout(), agent.Root())
			return nil
		},
	}
}

func newSettingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSettings()
			if err != nil {
				return err
			}
			data, err := bough.EncodeSettings(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
