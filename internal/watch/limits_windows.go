// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// limitReached reports Win32 failures that leave ReadDirectoryChangesW
// unusable: ERROR_TOO_MANY_OPEN_FILES, ERROR_INVALID_HANDLE and
// ERROR_NOT_ENOUGH_MEMORY.
func limitReached(err error) bool {
	for _, errno := range []syscall.Errno{4, 6, 8} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
