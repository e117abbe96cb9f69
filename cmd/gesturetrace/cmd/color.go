package cmd

import (
	"os"

	"golang.org/x/term"
)

type colorMode int

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

const (
	ansiReset = "\x1b[0m"
	ansiDim   = "\x1b[2m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
	ansiRed   = "\x1b[31m"
)

// palette wraps text in ANSI colors when enabled.
type palette struct {
	enabled bool
}

func newPalette(mode colorMode) palette {
	switch mode {
	case colorAlways:
		return palette{enabled: true}
	case colorNever:
		return palette{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return palette{}
	}
	f, ok := stdout.(*os.File)
	return palette{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (p palette) wrap(code, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + ansiReset
}

func (p palette) dim(s string) string     { return p.wrap(ansiDim, s) }
func (p palette) good(s string) string    { return p.wrap(ansiGreen, s) }
func (p palette) gesture(s string) string { return p.wrap(ansiCyan, s) }
func (p palette) bad(s string) string     { return p.wrap(ansiRed, s) }
