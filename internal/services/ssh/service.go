// Package ssh assembles and launches invocations of the external
// OpenSSH client. It implements no transport or authentication itself;
// everything past argv assembly is the ssh binary's business.
package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/michaelklose/remote-cli-runner/internal/models"
	"github.com/rs/zerolog"
)

// ClientName is the executable looked up on PATH.
const ClientName = "ssh"

// interruptExitCode is the conventional 128+SIGINT status.
const interruptExitCode = 130

// ErrClientNotFound indicates the ssh executable is not on PATH.
var ErrClientNotFound = errors.New("ssh client not found")

// BuildCommand returns the full argument vector for the external ssh
// invocation. The order is fixed by the ssh client's argument parsing:
//
//	ssh -i <key> -p <port> <user>@<host> [remoteCmd...]
//
// Each element stays a discrete argument; nothing is quoted or joined,
// so remote arguments containing spaces pass through literally. An
// empty remoteCmd connects to the remote default shell.
func BuildCommand(cfg models.RemoteConfig, remoteCmd []string) []string {
	argv := []string{
		ClientName,
		"-i", cfg.Key,
		"-p", strconv.Itoa(cfg.Port),
		cfg.User + "@" + cfg.Host,
	}
	return append(argv, remoteCmd...)
}

// Launcher runs an assembled argument vector and reports the exit code.
// It is the single seam between this program and process spawning, so
// tests can record invocations without running anything.
type Launcher interface {
	Launch(ctx context.Context, argv []string) (int, error)
}

// ExecLauncher launches the external process via os/exec, wiring the
// parent's standard streams through to the child.
type ExecLauncher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

// NewLauncher creates a launcher attached to the process's own streams.
func NewLauncher(logger zerolog.Logger) *ExecLauncher {
	return &ExecLauncher{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

// NewLauncherWithStreams creates a launcher with custom streams (for testing).
func NewLauncherWithStreams(logger zerolog.Logger, stdin io.Reader, stdout, stderr io.Writer) *ExecLauncher {
	return &ExecLauncher{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Launch starts argv and waits synchronously for it to finish.
//
// Exit mapping: the child's own exit code verbatim; 130 when a local
// interrupt arrives while waiting or the child dies from SIGINT; a
// missing executable reports ErrClientNotFound. No timeout is imposed
// on the child.
func (l *ExecLauncher) Launch(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return 1, errors.New("empty argument vector")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return 1, fmt.Errorf("%w: %q is not in PATH", ErrClientNotFound, argv[0])
	}

	cmd := exec.Command(path, argv[1:]...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	// Trap SIGINT for the duration of the wait. The terminal delivers
	// the signal to the child as well; the child winds down on its own
	// and we report 130 instead of dying mid-wait.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	l.logger.Debug().Strs("argv", argv).Msg("launching ssh client")

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("starting %s: %w", argv[0], err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	interrupted := false
	cancelled := ctx.Done()
	for {
		select {
		case <-sigCh:
			interrupted = true
		case <-cancelled:
			// Forward cancellation as an interrupt; the child decides
			// how to wind down.
			_ = cmd.Process.Signal(os.Interrupt)
			interrupted = true
			cancelled = nil
		case err := <-done:
			return l.mapExit(err, interrupted)
		}
	}
}

func (l *ExecLauncher) mapExit(waitErr error, interrupted bool) (int, error) {
	if interrupted {
		return interruptExitCode, nil
	}
	if waitErr == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() && ws.Signal() == syscall.SIGINT {
			return interruptExitCode, nil
		}
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("waiting for %s: %w", ClientName, waitErr)
}
