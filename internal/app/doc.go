// SPDX-License-Identifier: MPL-2.0

// Package app assembles the catalogs described by the configuration.
//
// It owns the shared snapshot cache and the collaborators every source
// needs (file lister, desktop entry index, launcher, bookmark stores), and
// composes them into the root catalog:
//
//	Union(sources..., Catalogs(sources...))
package app
