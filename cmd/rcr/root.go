package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/michaelklose/remote-cli-runner/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// Configuration flags.
	configFile string
	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "rcr <command> [args...]",
	Short: "Run commands on a remote host via SSH",
	Long: `rcr is a thin front end for the OpenSSH client: it reads the remote
connection settings from ~/.remote-cli-runner.ini, resolves the target
host's IP for display, and forwards the given command to the host,
relaying the remote exit code.

Any command not recognized as a subcommand is forwarded verbatim:

  rcr ping 8.8.8.8 -c 4
  rcr nslookup example.com
  rcr uname -a
  rcr systemctl status ssh`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE:          runPassthrough,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	// Usage and help go to stderr; stdout carries only the banner and
	// the remote command's own output.
	rootCmd.SetOut(os.Stderr)

	// "completion" and "help" are ordinary remote commands here, so the
	// builtin subcommands must not capture them. Only the -h/--help
	// flags trigger local usage.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ~/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output logs in JSON format")

	// Stop flag parsing at the first positional so remote flags like
	// "uname -a" reach the remote host untouched.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(nslookupCmd)
}

func setupLogging() {
	// Set output format
	if jsonOutput {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		output.FormatLevel = func(i interface{}) string {
			if s, ok := i.(string); ok {
				return strings.ToUpper(s)
			}
			return ""
		}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set log level
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func runPassthrough(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return &exitCodeError{code: 1}
	}
	return runRemote(cmd, args, args[0])
}

// exitCodeError carries a specific process exit status through cobra's
// error-only return path.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			return ec.code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
