package cmd

import "time"

// Options holds the shared command-line options for the screener CLI.
// Delay, Workers and Timeout only override the config when their flag is set.
type Options struct {
	Format    string
	Status    string
	Delay     time.Duration
	Workers   int
	Timeout   time.Duration
	Verbosity int
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI
}
