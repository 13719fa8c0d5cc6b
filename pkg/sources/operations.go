// SPDX-License-Identifier: MPL-2.0

package sources

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/trove-launcher/trove/pkg/catalog"
)

// ErrNoLauncher is returned by operations that need to start a process
// when the environment has no Launcher.
var ErrNoLauncher = errors.New("no launcher configured")

type (
	open struct{ env *Env }

	openWith struct {
		env   *Env
		entry *DesktopEntry
	}

	reveal struct{ env *Env }

	terminalHere struct{ env *Env }

	execute struct {
		env      *Env
		terminal bool
	}

	launch struct {
		env      *Env
		terminal bool
	}

	openURL struct{ env *Env }

	// inspect logs what the launcher knows about an item.
	inspect struct{ env *Env }
)

func (open) Name() string        { return "Open" }
func (open) Description() string { return "Open with the default application" }
func (open) IconName() string    { return "document-open" }
func (open) IsFactory() bool     { return false }

func (o open) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	path, err := filePath(o, item)
	if err != nil {
		return catalog.Outcome{}, err
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.OpenURI(ctx, fileURI(path))
}

func (o openWith) Name() string        { return fmt.Sprintf("Open with %s", o.entry.DisplayName()) }
func (o openWith) Description() string { return o.entry.Comment }
func (o openWith) IconName() string    { return o.entry.Icon }
func (openWith) IsFactory() bool       { return false }

func (o openWith) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	path, err := filePath(o, item)
	if err != nil {
		return catalog.Outcome{}, err
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.Launch(ctx, o.entry, []string{fileURI(path)}, false)
}

func (reveal) Name() string        { return "Reveal" }
func (reveal) Description() string { return "Open the parent folder" }
func (reveal) IconName() string    { return "folder-open" }
func (reveal) IsFactory() bool     { return false }

func (o reveal) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	path, err := filePath(o, item)
	if err != nil {
		return catalog.Outcome{}, err
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.OpenURI(ctx, fileURI(filepath.Dir(path)))
}

func (terminalHere) Name() string        { return "Open Terminal here" }
func (terminalHere) Description() string { return "Open a terminal in this folder" }
func (terminalHere) IconName() string    { return "utilities-terminal" }
func (terminalHere) IsFactory() bool     { return false }

func (o terminalHere) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	path, err := filePath(o, item)
	if err != nil {
		return catalog.Outcome{}, err
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.Spawn(ctx, nil, path, true)
}

func (o execute) Name() string {
	if o.terminal {
		return "Execute in Terminal"
	}
	return "Execute"
}
func (execute) Description() string { return "Run this program" }
func (execute) IconName() string    { return "system-run" }
func (execute) IsFactory() bool     { return false }

func (o execute) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	path, err := filePath(o, item)
	if err != nil {
		return catalog.Outcome{}, err
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.Spawn(ctx, []string{path}, filepath.Dir(path), o.terminal)
}

func (o launch) Name() string {
	if o.terminal {
		return "Launch in Terminal"
	}
	return "Launch"
}
func (launch) Description() string { return "Launch this application" }
func (launch) IconName() string    { return "system-run" }
func (launch) IsFactory() bool     { return false }

func (o launch) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	app, ok := item.(*AppItem)
	if !ok {
		return catalog.Outcome{}, &catalog.InvalidLeafError{Operation: o.Name(), Item: item.Name(), Reason: "not an application"}
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.Launch(ctx, app.entry, nil, o.terminal)
}

func (openURL) Name() string        { return "Open URL" }
func (openURL) Description() string { return "Open with the default browser" }
func (openURL) IconName() string    { return "forward" }
func (openURL) IsFactory() bool     { return false }

func (o openURL) Apply(ctx context.Context, item catalog.Item) (catalog.Outcome, error) {
	uri, ok := item.Value().(string)
	if _, isURL := item.(*URLItem); !ok || !isURL {
		return catalog.Outcome{}, &catalog.InvalidLeafError{Operation: o.Name(), Item: item.Name(), Reason: "not a URL"}
	}
	l, err := launcher(o.env)
	if err != nil {
		return catalog.Outcome{}, err
	}
	return catalog.Effect(), l.OpenURI(ctx, uri)
}

func (inspect) Name() string        { return "Inspect" }
func (inspect) Description() string { return "Print debug information" }
func (inspect) IconName() string    { return "emblem-system" }
func (inspect) IsFactory() bool     { return false }

func (o inspect) Apply(_ context.Context, item catalog.Item) (catalog.Outcome, error) {
	ops := item.Operations()
	opNames := make([]string, len(ops))
	for i, op := range ops {
		opNames[i] = op.Name()
	}
	o.env.logger().Info("inspect",
		"kind", catalog.TypeName(item),
		"name", item.Name(),
		"value", fmt.Sprint(item.Value()),
		"content", item.HasContent(),
		"operations", opNames,
	)
	return catalog.Effect(), nil
}

func filePath(op catalog.Operation, item catalog.Item) (string, error) {
	f, ok := item.(*FileItem)
	if !ok {
		return "", &catalog.InvalidLeafError{Operation: op.Name(), Item: item.Name(), Reason: "not a file"}
	}
	return f.path, nil
}

func launcher(env *Env) (Launcher, error) {
	if env == nil || env.Launcher == nil {
		return nil, ErrNoLauncher
	}
	return env.Launcher, nil
}
