package cmd

import (
	"fmt"

	"github.com/pavelkvkv/mp3DurationDetector/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - MP3 duration and stream parameter probe",
	}

	rootCmd.AddCommand(DefineProbeCommand())
	rootCmd.AddCommand(DefineVersionCommand())

	return rootCmd.Execute()
}

func DefineVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print build information",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Version:    %s\n", env.Version)
			fmt.Printf("Commit:     %s\n", env.CommitHash)
			fmt.Printf("Build Time: %s\n", env.BuildTime)
			return nil
		},
	}
}
