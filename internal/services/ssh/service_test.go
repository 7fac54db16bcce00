package ssh

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/michaelklose/remote-cli-runner/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testConfig() models.RemoteConfig {
	return models.RemoteConfig{
		Host: "example.com",
		User: "admin",
		Key:  "/home/admin/.ssh/id_rsa",
		Port: 22,
	}
}

func TestBuildCommand_Order(t *testing.T) {
	argv := BuildCommand(testConfig(), []string{"uname", "-a"})

	assert.Equal(t, []string{
		"ssh",
		"-i", "/home/admin/.ssh/id_rsa",
		"-p", "22",
		"admin@example.com",
		"uname", "-a",
	}, argv)
}

func TestBuildCommand_TargetAndPort(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 2222

	argv := BuildCommand(cfg, []string{"ls"})

	assert.Equal(t, "admin@example.com", argv[5])
	require.Equal(t, "-p", argv[3])
	assert.Equal(t, "2222", argv[4])
}

func TestBuildCommand_EmptyRemoteCommand(t *testing.T) {
	argv := BuildCommand(testConfig(), nil)

	// Degenerate case: connect and run the remote default shell.
	assert.Len(t, argv, 6)
	assert.Equal(t, "admin@example.com", argv[5])
}

func TestBuildCommand_ArgumentsPassThroughLiterally(t *testing.T) {
	remoteCmd := []string{"echo", "hello world", "$HOME", "a;b"}

	argv := BuildCommand(testConfig(), remoteCmd)

	// Trailing elements stay discrete and unmodified; nothing is
	// quoted, merged, or reordered.
	assert.Equal(t, remoteCmd, argv[6:])
}

func TestExecLauncher_ClientNotFound(t *testing.T) {
	launcher := NewLauncher(testLogger())

	code, err := launcher.Launch(context.Background(), []string{"rcr-test-no-such-binary"})

	assert.Equal(t, 1, code)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Contains(t, err.Error(), "rcr-test-no-such-binary")
}

func TestExecLauncher_ExitCodePropagated(t *testing.T) {
	launcher := NewLauncher(testLogger())

	code, err := launcher.Launch(context.Background(), []string{"sh", "-c", "exit 7"})

	require.NoError(t, err)
	assert.Equal(t, 7, code)
}

func TestExecLauncher_Success(t *testing.T) {
	var stdout bytes.Buffer
	launcher := NewLauncherWithStreams(testLogger(), strings.NewReader(""), &stdout, io.Discard)

	code, err := launcher.Launch(context.Background(), []string{"sh", "-c", "echo hello"})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestExecLauncher_ChildKilledBySIGINT(t *testing.T) {
	launcher := NewLauncherWithStreams(testLogger(), strings.NewReader(""), io.Discard, io.Discard)

	// The child delivers SIGINT to itself; only the child dies.
	code, err := launcher.Launch(context.Background(), []string{"sh", "-c", "kill -INT $$"})

	require.NoError(t, err)
	assert.Equal(t, 130, code)
}

func TestExecLauncher_EmptyArgv(t *testing.T) {
	launcher := NewLauncher(testLogger())

	code, err := launcher.Launch(context.Background(), nil)

	assert.Equal(t, 1, code)
	assert.Error(t, err)
}
