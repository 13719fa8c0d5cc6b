// SPDX-License-Identifier: MPL-2.0

// Package sources provides the concrete items and providers of the
// launcher: files, directories, installed applications, recently used
// documents and bookmarked places.
//
// Providers never touch the desktop directly. Listing directories, parsing
// desktop entries, reading bookmark stores and spawning processes go
// through the collaborator interfaces bundled in Env.
package sources
