package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/viper"

	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/dataset"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/vault"
)

const maxPasswordAttempts = 3

// resolvePassword returns the configured password, or prompts for it. The
// password never reaches the logs.
func resolvePassword(prompt string) (string, error) {
	if p := viper.GetString("password"); p != "" {
		return p, nil
	}
	return cli.ReadPassword(prompt)
}

// unlockEnvelope reads the envelope once, then prompts up to three times
// until a password decrypts it. A password supplied via config or
// SALESCOPE_PASSWORD gets a single attempt.
func unlockEnvelope(path string) (*model.Payload, error) {
	envelope, err := vault.ReadFile(path)
	if err != nil {
		return nil, err
	}

	configured := viper.GetString("password") != ""
	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		password, err := resolvePassword("Password")
		if err != nil {
			return nil, err
		}
		if password == "" {
			return nil, common.ErrEmptyPassword
		}

		var payload *model.Payload
		err = withSpinner("Deriving key and decrypting", func() error {
			var decErr error
			payload, decErr = envelope.DecryptPayload(password)
			return decErr
		})
		if err == nil {
			return payload, nil
		}
		if !errors.Is(err, vault.ErrIncorrectPassword) {
			return nil, err
		}
		if configured || attempt == maxPasswordAttempts {
			return nil, err
		}
		fmt.Fprintln(os.Stderr, cli.FormatWarning("Incorrect password, try again"))
	}
	return nil, vault.ErrIncorrectPassword
}

// unlockDataset decrypts the envelope and canonicalizes the payload.
func unlockDataset(path string) (*dataset.Dataset, error) {
	payload, err := unlockEnvelope(path)
	if err != nil {
		return nil, err
	}
	return dataset.New(payload), nil
}

// withSpinner runs fn while an indeterminate spinner animates on stderr.
// Key derivation at 600k PBKDF2 iterations takes long enough to warrant it.
func withSpinner(description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	_ = bar.Finish()
	return err
}
