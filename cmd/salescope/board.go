package main

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/tui"
)

func boardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board [envelope]",
		Short: "Open the interactive dashboard",
		Long: `Decrypts the envelope and opens the interactive terminal dashboard with
the yearly and monthly boards.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "encrypted-data.json"
			if len(args) == 1 {
				path = args[0]
			}

			data, err := unlockDataset(path)
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), data)
		},
	}
}
