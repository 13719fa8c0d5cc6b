// SPDX-License-Identifier: MPL-2.0

// Package bookmarks reads the desktop's bookmark stores: GTK bookmark
// files for places and the XBEL recently-used file for recent documents.
package bookmarks
