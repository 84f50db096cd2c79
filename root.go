package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts commandOptions
	ctx := newCommandContext(&opts)

	rootCmd := &cobra.Command{
		Use:           "musicstrip",
		Short:         "Scroll through the Bangalore music strip",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayer(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&opts.scene, "scene", "s", "", "Scene file name, overrides paths.scene_file")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "Draw the debug overlay")
	rootCmd.Flags().BoolVar(&opts.muted, "muted", false, "Start with audio muted")

	rootCmd.AddCommand(newWindowsCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
