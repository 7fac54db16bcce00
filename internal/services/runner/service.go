// Package runner orchestrates one remote command invocation.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/michaelklose/remote-cli-runner/internal/models"
	"github.com/michaelklose/remote-cli-runner/internal/services/resolver"
	"github.com/michaelklose/remote-cli-runner/internal/services/ssh"
	"github.com/rs/zerolog"
)

// Service defines the interface for the command runner.
type Service interface {
	Run(ctx context.Context, cfg models.RemoteConfig, req models.CommandRequest) (*models.RunResult, error)
}

// Impl implements the runner Service interface.
type Impl struct {
	resolverSvc resolver.Service
	launcher    ssh.Launcher
	logger      zerolog.Logger
	stdout      io.Writer
}

// New creates a new runner service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		resolverSvc: resolver.New(logger),
		launcher:    ssh.NewLauncher(logger),
		logger:      logger,
		stdout:      os.Stdout,
	}
}

// NewWithServices creates a new runner service with custom collaborators (for testing).
func NewWithServices(
	logger zerolog.Logger,
	resolverSvc resolver.Service,
	launcher ssh.Launcher,
	stdout io.Writer,
) *Impl {
	return &Impl{
		resolverSvc: resolverSvc,
		launcher:    launcher,
		logger:      logger,
		stdout:      stdout,
	}
}

// Run resolves the target for display, builds the ssh argument vector,
// launches the external client, and reports its exit code.
//
// The forward lookup is advisory: a failed resolution yields the
// "unknown" sentinel in the banner and never stops the launch. The only
// error Run returns is a launch failure; everything the remote command
// does comes back as an exit code.
func (s *Impl) Run(ctx context.Context, cfg models.RemoteConfig, req models.CommandRequest) (*models.RunResult, error) {
	ip := s.resolverSvc.Resolve(ctx, cfg.Host)

	s.logger.Debug().
		Str("host", cfg.Host).
		Str("ip", ip).
		Strs("command", req.Args).
		Msg("dispatching remote command")

	if req.ShowBanner {
		fmt.Fprintf(s.stdout, "Running %s on host %s with IP %s\n", bannerLabel(req), cfg.Host, ip)
	}

	argv := ssh.BuildCommand(cfg, req.Args)

	code, err := s.launcher.Launch(ctx, argv)
	if err != nil {
		return nil, err
	}

	result := &models.RunResult{
		ExitCode:    code,
		ResolvedIP:  ip,
		Interrupted: code == 130,
	}

	s.logger.Debug().
		Int("exit_code", result.ExitCode).
		Bool("interrupted", result.Interrupted).
		Msg("remote command finished")

	return result, nil
}

func bannerLabel(req models.CommandRequest) string {
	if req.Label != "" {
		return req.Label
	}
	if len(req.Args) > 0 {
		return req.Args[0]
	}
	return "command"
}
