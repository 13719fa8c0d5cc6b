// SPDX-License-Identifier: MPL-2.0

// Package launch starts desktop applications and opens URIs.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"

	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/sources"
)

// DefaultTerminal is the terminal command used when none is configured.
const DefaultTerminal = "x-terminal-emulator -e"

// ErrEmptyCommand is returned when there is nothing to run.
var ErrEmptyCommand = errors.New("empty command")

type (
	// Options configures a Launcher.
	Options struct {
		// Terminal is the command line that runs a program in a terminal
		// emulator; the program's argv is appended to it.
		Terminal string
		// Opener is the program that opens URIs. Empty selects the platform default.
		Opener string
		Logger *log.Logger
	}

	// Launcher implements sources.Launcher by starting detached processes.
	Launcher struct {
		terminal []string
		opener   string
		logger   *log.Logger
		start    func(cmd *exec.Cmd) error
	}
)

var _ sources.Launcher = (*Launcher)(nil)

// New returns a Launcher. It fails when the terminal command cannot be parsed.
func New(opts Options) (*Launcher, error) {
	term := opts.Terminal
	if strings.TrimSpace(term) == "" {
		term = DefaultTerminal
	}
	terminal, err := shell.Fields(term, nil)
	if err != nil {
		return nil, fmt.Errorf("parse terminal command %q: %w", term, err)
	}
	opener := opts.Opener
	if opener == "" {
		opener = defaultOpener()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Launcher{terminal: terminal, opener: opener, logger: logger, start: startDetached}, nil
}

// Launch runs a desktop entry with uris as its file arguments. Entries
// marked Terminal=true always run in a terminal.
func (l *Launcher) Launch(ctx context.Context, entry *sources.DesktopEntry, uris []string, terminal bool) error {
	argv, err := ExpandExec(entry, uris)
	if err != nil {
		return err
	}
	return l.Spawn(ctx, argv, "", terminal || entry.Terminal)
}

// Spawn starts argv in dir without waiting for it to exit.
func (l *Launcher) Spawn(ctx context.Context, argv []string, dir string, terminal bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if terminal {
		prefix := l.terminal
		if len(argv) == 0 && len(prefix) > 1 && prefix[len(prefix)-1] == "-e" {
			// Nothing to execute: open a plain terminal.
			prefix = prefix[:len(prefix)-1]
		}
		argv = append(slices.Clone(prefix), argv...)
	}
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	l.logger.Debug("spawning", "argv", argv, "dir", dir)
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	return nil
}

// OpenURI opens uri with the platform opener.
func (l *Launcher) OpenURI(ctx context.Context, uri string) error {
	return l.Spawn(ctx, []string{l.opener, uri}, "", false)
}

// ExpandExec builds the argv of a desktop entry's Exec line, substituting
// field codes. When the line has no file field code, uris are appended.
func ExpandExec(entry *sources.DesktopEntry, uris []string) ([]string, error) {
	fields, err := shell.Fields(entry.Exec, nil)
	if err != nil {
		return nil, &catalog.InvalidDataError{Value: entry.Exec, Err: err}
	}
	if len(fields) == 0 {
		return nil, &catalog.InvalidDataError{Value: entry.Path, Err: ErrEmptyCommand}
	}

	var (
		argv    []string
		hasFile bool
	)
	for _, f := range fields {
		switch f {
		case "%f", "%u":
			hasFile = true
			if len(uris) > 0 {
				argv = append(argv, localOrURI(f, uris[0]))
			}
		case "%F", "%U":
			hasFile = true
			for _, u := range uris {
				argv = append(argv, localOrURI(f, u))
			}
		case "%i":
			if entry.Icon != "" {
				argv = append(argv, "--icon", entry.Icon)
			}
		case "%c":
			argv = append(argv, entry.DisplayName())
		case "%k":
			argv = append(argv, entry.Path)
		default:
			if s := stripFieldCodes(f); s != "" {
				argv = append(argv, s)
			}
		}
	}
	if !hasFile {
		argv = append(argv, uris...)
	}
	if len(argv) == 0 {
		return nil, &catalog.InvalidDataError{Value: entry.Path, Err: ErrEmptyCommand}
	}
	return argv, nil
}

// localOrURI converts file:// URIs to paths for the %f and %F codes.
func localOrURI(code, uri string) string {
	if code != "%f" && code != "%F" {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// stripFieldCodes drops field codes embedded in an argument, keeping "%%" as "%".
func stripFieldCodes(arg string) string {
	var b strings.Builder
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' || i == len(arg)-1 {
			b.WriteByte(arg[i])
			continue
		}
		i++
		if arg[i] == '%' {
			b.WriteByte('%')
		}
	}
	return b.String()
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}
