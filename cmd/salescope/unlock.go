package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func unlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlock [envelope]",
		Short: "Decrypt an envelope and print the payload JSON",
		Long: `Decrypts the envelope with a prompted password and writes the combined
payload to stdout (or a file), for inspection or re-packing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUnlock,
	}

	cmd.Flags().StringP("output", "o", "", "write payload to file instead of stdout")

	return cmd
}

func runUnlock(cmd *cobra.Command, args []string) error {
	path := "encrypted-data.json"
	if len(args) == 1 {
		path = args[0]
	}

	payload, err := unlockEnvelope(path)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	raw = append(raw, '\n')

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(output, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write payload %s: %w", output, err)
	}
	return nil
}
