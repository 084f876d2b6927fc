package cmd

import (
	"fmt"
	"strings"

	"github.com/spiffcs/screener/internal/tui"
)

// triStateFlag is a pflag.Value for a boolean that may also be left on
// "auto". A bare --tui means true.
type triStateFlag struct {
	target **bool
}

func newTUIFlag(opts *Options) *triStateFlag {
	return &triStateFlag{target: &opts.TUI}
}

func (f *triStateFlag) String() string {
	switch v := *f.target; {
	case v == nil:
		return "auto"
	case *v:
		return "true"
	default:
		return "false"
	}
}

func (f *triStateFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		v := true
		*f.target = &v
	case "false", "0", "no", "off":
		v := false
		*f.target = &v
	case "auto", "":
		*f.target = nil
	default:
		return fmt.Errorf("invalid value %q: use true, false, or auto", s)
	}
	return nil
}

func (f *triStateFlag) Type() string {
	return "bool"
}

func (f *triStateFlag) IsBoolFlag() bool {
	return true
}

// shouldUseTUI decides whether progress is drawn on stderr. Verbose runs
// always log instead so their output stays readable.
func shouldUseTUI(opts *Options) bool {
	if opts.Verbosity > 0 {
		return false
	}
	if opts.TUI != nil {
		return *opts.TUI
	}
	return tui.ShouldUseTUI()
}
