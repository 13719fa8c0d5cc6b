// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"

	"github.com/trove-launcher/trove/pkg/catalog"
	"github.com/trove-launcher/trove/pkg/sources"
)

// recorder replaces process start with argv capture.
type recorder struct {
	started []*exec.Cmd
}

func (r *recorder) start(cmd *exec.Cmd) error {
	r.started = append(r.started, cmd)
	return nil
}

func newRecorded(t *testing.T, opts Options) (*Launcher, *recorder) {
	t.Helper()
	l, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r := &recorder{}
	l.start = r.start
	return l, r
}

func TestExpandExec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		exec string
		uris []string
		want []string
	}{
		{name: "single uri", exec: "firefox %u", uris: []string{"https://a", "https://b"}, want: []string{"firefox", "https://a"}},
		{name: "uri list", exec: "viewer %U", uris: []string{"file:///a", "file:///b"}, want: []string{"viewer", "file:///a", "file:///b"}},
		{name: "local files", exec: "gedit %F", uris: []string{"file:///tmp/a%20b.txt"}, want: []string{"gedit", "/tmp/a b.txt"}},
		{name: "no uris drops code", exec: "gedit %F", want: []string{"gedit"}},
		{name: "no file code appends", exec: "mpv --fs", uris: []string{"file:///v.mkv"}, want: []string{"mpv", "--fs", "file:///v.mkv"}},
		{name: "quoted arguments", exec: `sh -c "echo 'hi there'"`, want: []string{"sh", "-c", "echo 'hi there'"}},
		{name: "icon and name", exec: "app %i %c %k", want: []string{"app", "--icon", "app-icon", "App", "/apps/app.desktop"}},
		{name: "escaped percent", exec: "printf 100%%", want: []string{"printf", "100%"}},
		{name: "deprecated codes", exec: "app %d %m --x=%v", want: []string{"app", "--x="}},
	}

	entry := &sources.DesktopEntry{Path: "/apps/app.desktop", Name: "App", Icon: "app-icon"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := *entry
			e.Exec = tt.exec
			got, err := ExpandExec(&e, tt.uris)
			if err != nil {
				t.Fatalf("ExpandExec() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExpandExec() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandExec_Invalid(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   ", `app "unterminated`} {
		_, err := ExpandExec(&sources.DesktopEntry{Exec: line}, nil)
		if !errors.Is(err, catalog.ErrInvalidData) {
			t.Errorf("ExpandExec(%q) error = %v, want ErrInvalidData", line, err)
		}
	}
}

func TestLauncher_Spawn(t *testing.T) {
	t.Parallel()

	l, r := newRecorded(t, Options{Terminal: "xterm -e", Opener: "xdg-open"})
	ctx := context.Background()

	if err := l.Spawn(ctx, []string{"/bin/tool", "arg"}, "/work", false); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if err := l.Spawn(ctx, []string{"htop"}, "", true); err != nil {
		t.Fatalf("Spawn(terminal) error = %v", err)
	}
	if err := l.Spawn(ctx, nil, "/home", true); err != nil {
		t.Fatalf("Spawn(plain terminal) error = %v", err)
	}
	if err := l.OpenURI(ctx, "https://example.org"); err != nil {
		t.Fatalf("OpenURI() error = %v", err)
	}

	want := [][]string{
		{"/bin/tool", "arg"},
		{"xterm", "-e", "htop"},
		{"xterm"},
		{"xdg-open", "https://example.org"},
	}
	for i, w := range want {
		if got := r.started[i].Args; !slices.Equal(got, w) {
			t.Errorf("start %d args = %q, want %q", i, got, w)
		}
	}
	if r.started[0].Dir != "/work" || r.started[2].Dir != "/home" {
		t.Errorf("dirs = %q, %q", r.started[0].Dir, r.started[2].Dir)
	}
}

func TestLauncher_LaunchHonorsTerminalFlag(t *testing.T) {
	t.Parallel()

	l, r := newRecorded(t, Options{Terminal: "foot"})
	entry := &sources.DesktopEntry{Name: "Top", Exec: "htop", Terminal: true}

	if err := l.Launch(context.Background(), entry, nil, false); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if got := r.started[0].Args; !slices.Equal(got, []string{"foot", "htop"}) {
		t.Errorf("args = %q", got)
	}
}

func TestLauncher_Errors(t *testing.T) {
	t.Parallel()

	l, _ := newRecorded(t, Options{})
	if err := l.Spawn(context.Background(), nil, "", false); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Spawn(nil) error = %v, want ErrEmptyCommand", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Spawn(ctx, []string{"true"}, "", false); !errors.Is(err, context.Canceled) {
		t.Errorf("Spawn(canceled) error = %v, want context.Canceled", err)
	}

	if _, err := New(Options{Terminal: `xterm "`}); err == nil {
		t.Error("New() accepted an unparsable terminal command")
	}
}
