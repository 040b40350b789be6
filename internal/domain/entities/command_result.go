package entities

// CommandResult is the captured outcome of one subprocess invocation.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the process exited with status zero.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}
