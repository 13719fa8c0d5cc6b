// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	CatalogNotFoundId
	NoContentId
	NoParentId
	InvalidLeafId
	InvalidDataId
	ConfigLoadFailedId
	LaunchFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation about this issue
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file or directory behind this item no longer exists.

## Things you can try:
- Rescan the catalog that listed it:
~~~
$ trove rescan <catalog>
~~~
- Check that removable media or network shares are mounted`,
	}

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# Catalog not found!

No catalog matches the name or identifier you gave.

## Things you can try:
- List the available catalogs and their identifiers:
~~~
$ trove catalogs
~~~
- Quote identifiers, they contain brackets and quotes:
~~~
$ trove browse 'files(depth="1")["/home/me/Documents"]'
~~~
- Add a tree or directory to your configuration:
~~~cue
trees: [{path: "~/Projects", depth: 2}]
~~~`,
	}

	noContentIssue = &Issue{
		id: NoContentId,
		mdMsg: `
# Nothing to browse!

This item is a leaf: it has no content to list.

## Things you can try:
- Browse a directory or catalog item instead
- Run one of the item's actions:
~~~
$ trove describe <catalog> <item>
~~~`,
	}

	noParentIssue = &Issue{
		id: NoParentId,
		mdMsg: `
# Already at the top!

This catalog has no parent to go up to.

## Things you can try:
- Go back to the previous catalog instead
- Start again from the root catalog:
~~~
$ trove list
~~~`,
	}

	invalidLeafIssue = &Issue{
		id: InvalidLeafId,
		mdMsg: `
# Action not available!

The action cannot run on this item. Catalogs listed live are never cached,
so they cannot be rescanned, and items without content cannot be browsed.

## Things you can try:
- Show the actions that apply to the item:
~~~
$ trove describe <catalog> <item>
~~~`,
	}

	invalidDataIssue = &Issue{
		id: InvalidDataId,
		mdMsg: `
# Some entries could not be read!

A source produced data that could not be turned into an item. The other
entries of the catalog are still listed.

## Things you can try:
- Run with --verbose to see which entries were skipped
- Check the permissions of the skipped paths`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or did not match the schema.

## Things you can try:
- Show the configuration trove would use:
~~~
$ trove config show
~~~
- Write a fresh default configuration:
~~~
$ trove config init
~~~
- Check the file with the CUE tool:
~~~
$ cue vet config.cue
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch!

The program, opener or terminal could not be started.

## Things you can try:
- Check that xdg-open is installed (open on macOS)
- Configure the terminal command:
~~~cue
terminal: command: "foot -e"
~~~`,
		extLinks: []HttpLink{"https://specifications.freedesktop.org/desktop-entry-spec/latest/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

trove was not allowed to read a directory or run a file.

## Things you can try:
- Check the permissions of the path
- Exclude the path from indexing:
~~~cue
exclude: ["**/private"]
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():     fileNotFoundIssue,
		catalogNotFoundIssue.Id():  catalogNotFoundIssue,
		noContentIssue.Id():        noContentIssue,
		noParentIssue.Id():         noParentIssue,
		invalidLeafIssue.Id():      invalidLeafIssue,
		invalidDataIssue.Id():      invalidDataIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		launchFailedIssue.Id():     launchFailedIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
