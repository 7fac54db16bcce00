package models

// CommandRequest describes one remote command invocation.
type CommandRequest struct {
	Args       []string // remote command and its arguments, forwarded in order
	Label      string   // banner label; defaults to the first argument
	ShowBanner bool
}

// RunResult holds the outcome of a remote command run.
type RunResult struct {
	ExitCode    int
	ResolvedIP  string // advisory forward lookup, "unknown" on failure
	Interrupted bool   // a local interrupt ended the wait (ExitCode 130)
}
