// SPDX-License-Identifier: MPL-2.0

package sources

import "os"

// sameFile reports whether both paths exist and name the same file.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
