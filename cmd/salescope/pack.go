package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/vault"
)

func packCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Combine data sources into an encrypted envelope",
		Long: `Reads the yearly records, monthly data and customer map sources, combines
them into one payload and encrypts it with a password-derived AES-256-GCM key.

When the yearly records source is missing, the yearly records are recovered by
decrypting the existing envelope with the same password, so monthly data can be
refreshed without the original records file.`,
		RunE: runPack,
	}

	cmd.Flags().String("records", "records.json", "yearly records source")
	cmd.Flags().String("monthly", "monthly.json", "monthly actual/forecast source")
	cmd.Flags().String("customer-map", "customer-map.json", "customer metadata map source")
	cmd.Flags().StringP("output", "o", "encrypted-data.json", "envelope output path")

	return cmd
}

func runPack(cmd *cobra.Command, _ []string) error {
	recordsPath, _ := cmd.Flags().GetString("records")
	monthlyPath, _ := cmd.Flags().GetString("monthly")
	customerMapPath, _ := cmd.Flags().GetString("customer-map")
	outputPath, _ := cmd.Flags().GetString("output")

	password, err := resolvePassword("Encryption password")
	if err != nil {
		return err
	}
	if password == "" {
		return common.ErrEmptyPassword
	}

	payload := &model.Payload{
		Records:     []model.SalesRecord{},
		MonthlyData: model.MonthlyData{Actual: []model.MonthlyRecord{}, Forecast: []model.MonthlyRecord{}},
		CustomerMap: model.CustomerMap{Map: map[string]model.CustomerMeta{}},
	}

	// Yearly records: the source file wins; without it, fall back to the
	// records inside the existing envelope.
	switch {
	case fileExists(recordsPath):
		var yearly struct {
			Records []model.SalesRecord `json:"records"`
		}
		if err := readJSONFile(recordsPath, &yearly); err != nil {
			return common.SourceError(recordsPath, err)
		}
		payload.Records = yearly.Records
		slog.Info("parsed yearly records", "source", recordsPath, "records", len(payload.Records))

	case fileExists(outputPath):
		slog.Info("records source missing, decrypting existing envelope", "envelope", outputPath)
		existing, err := vault.ReadFile(outputPath)
		if err != nil {
			return err
		}
		var prev *model.Payload
		err = withSpinner("Decrypting existing envelope", func() error {
			var decErr error
			prev, decErr = existing.DecryptPayload(password)
			return decErr
		})
		if err != nil {
			return err
		}
		payload.Records = prev.Records
		slog.Info("recovered yearly records", "records", len(payload.Records))

	default:
		return common.ErrMissingSource
	}

	// Monthly data and the customer map are optional; absent sources leave
	// empty collections.
	if fileExists(monthlyPath) {
		if err := readJSONFile(monthlyPath, &payload.MonthlyData); err != nil {
			return common.SourceError(monthlyPath, err)
		}
		slog.Info("parsed monthly data", "source", monthlyPath,
			"actual", len(payload.MonthlyData.Actual), "forecast", len(payload.MonthlyData.Forecast))
	} else {
		slog.Info("monthly source not found, using empty monthly data", "source", monthlyPath)
	}

	if fileExists(customerMapPath) {
		if err := readJSONFile(customerMapPath, &payload.CustomerMap); err != nil {
			return common.SourceError(customerMapPath, err)
		}
		slog.Info("parsed customer map", "source", customerMapPath, "entries", len(payload.CustomerMap.Map))
	} else {
		slog.Info("customer map not found, using empty map", "source", customerMapPath)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	slog.Info("combined payload", "bytes", len(plaintext))

	var envelope *vault.Envelope
	err = withSpinner("Encrypting payload", func() error {
		var encErr error
		envelope, encErr = vault.Encrypt(plaintext, password)
		return encErr
	})
	if err != nil {
		return err
	}

	if err := envelope.WriteFile(outputPath); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s (%d records, %d actual, %d forecast)",
		outputPath, len(payload.Records), len(payload.MonthlyData.Actual), len(payload.MonthlyData.Forecast))))
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
