// SPDX-License-Identifier: MPL-2.0

// Package desktop reads freedesktop.org desktop entries and indexes the
// installed applications by the mime types they handle.
package desktop
