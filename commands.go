package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/milk9111/musicstrip/assets"
	"github.com/milk9111/musicstrip/caption"
	"github.com/milk9111/musicstrip/config"
	"github.com/milk9111/musicstrip/engine"
	"github.com/milk9111/musicstrip/scene"
	"github.com/milk9111/musicstrip/scenes"
	"github.com/milk9111/musicstrip/sequence"
	"github.com/milk9111/musicstrip/tween"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWindowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List the scene's windows and ambient channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.loadScene()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderWindows(s))
			fmt.Fprintln(out, renderChannels(s))
			return nil
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the scene, decode every track and mount it without a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, err := ctx.loadScene()
			if err != nil {
				return err
			}
			if err := validateScene(cmd.Context(), cfg, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scene %s ok: %d windows, %d channels, %d meshes\n",
				s.Name, len(s.Windows), len(s.Channels), len(s.Meshes))
			return nil
		},
	}
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.opts.config
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return configCmd
}

// validateScene runs everything the player does at mount except opening a
// window or an audio device.
func validateScene(ctx context.Context, cfg *config.Config, s *scenes.Scene) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tweens := tween.New()
	graph, err := scene.NewGraph(s.Meshes, tweens, nil)
	if err != nil {
		return err
	}
	captions, err := caption.New(s.Captions, tweens, nil)
	if err != nil {
		return err
	}

	library := assets.NewLibrary(cfg.Paths.AssetDir, cfg.Audio.SampleRate, nil)
	if err := library.Preload(ctx, sceneTracks(s)); err != nil {
		return err
	}

	eng, err := engine.New(s, engine.Collaborators{
		Sequence: sequence.NewPlayer(s.Camera, 0),
		Scene:    graph,
		Resolver: graph,
		Captions: captions,
	}, zap.NewNop())
	if err != nil {
		return err
	}
	eng.Tick()
	eng.Teardown()
	return nil
}

func sceneTracks(s *scenes.Scene) []string {
	tracks := make([]string, 0, len(s.Channels))
	for _, ch := range s.Channels {
		tracks = append(tracks, ch.Track)
	}
	return tracks
}

func newSceneTable(title string, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendHeader(header)
	return tw
}

// renderWindows lists windows in declaration order, which is also dispatch
// order. Consecutive windows of one kind share a merged Kind cell.
func renderWindows(s *scenes.Scene) string {
	tw := newSceneTable("windows", table.Row{"Kind", "ID", "Start", "End", "Target"})
	for _, w := range s.Windows {
		target := w.Target
		if w.Kind == "caption" {
			target = "slot " + strconv.Itoa(w.Slot)
		}
		tw.AppendRow(table.Row{w.Kind, w.ID, formatPosition(w.Start), formatPosition(w.End), target})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Kind", AutoMerge: true, VAlign: text.VAlignMiddle},
		{Name: "Start", Align: text.AlignRight},
		{Name: "End", Align: text.AlignRight},
	})
	tw.AppendFooter(table.Row{"", "", "", "total", len(s.Windows)})
	return tw.Render()
}

func renderChannels(s *scenes.Scene) string {
	tw := newSceneTable("ambient channels", table.Row{"Channel", "Track", "Start", "End", "Volume", "Fade in", "Fade out"})
	for _, ch := range s.Channels {
		tw.AppendRow(table.Row{
			ch.Name,
			ch.Track,
			formatPosition(ch.Start),
			formatPosition(ch.End),
			strconv.FormatFloat(ch.Volume, 'f', 2, 64),
			ch.FadeIn.String(),
			ch.FadeOut.String(),
		})
	}
	numeric := []string{"Start", "End", "Volume", "Fade in", "Fade out"}
	configs := []table.ColumnConfig{{Name: "Track", WidthMax: 32}}
	for _, name := range numeric {
		configs = append(configs, table.ColumnConfig{Name: name, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func formatPosition(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
