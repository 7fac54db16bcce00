package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/michaelklose/remote-cli-runner/internal/config"
	"github.com/michaelklose/remote-cli-runner/internal/models"
	"github.com/michaelklose/remote-cli-runner/internal/services/runner"
	"github.com/michaelklose/remote-cli-runner/internal/services/ssh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// runRemote loads the configuration, dispatches remoteCmd to the
// configured host, and maps the outcome to a process exit status.
// Configuration failures are reported before any network or process
// action is attempted.
func runRemote(cmd *cobra.Command, remoteCmd []string, label string) error {
	path := configFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Error().Err(err).Msg("cannot determine config path")
			return &exitCodeError{code: 1}
		}
	}

	parser := config.NewParser()
	cfg, err := parser.LoadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to load config")
		if errors.Is(err, config.ErrConfigMissing) {
			fmt.Fprintln(os.Stderr, "Create it with a [remote] section (host, user, key, port).")
		}
		return &exitCodeError{code: 1}
	}

	runnerSvc := runner.New(log.Logger)
	result, err := runnerSvc.Run(cmd.Context(), *cfg, models.CommandRequest{
		Args:       remoteCmd,
		Label:      label,
		ShowBanner: true,
	})
	if err != nil {
		if errors.Is(err, ssh.ErrClientNotFound) {
			log.Error().Err(err).Msg("install an OpenSSH client and ensure 'ssh' is in PATH")
		} else {
			log.Error().Err(err).Msg("failed to launch ssh client")
		}
		return &exitCodeError{code: 1}
	}

	if result.ExitCode != 0 {
		return &exitCodeError{code: result.ExitCode}
	}
	return nil
}
