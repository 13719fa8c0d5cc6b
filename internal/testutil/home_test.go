// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func homeVar() string {
	if runtime.GOOS == "windows" {
		return "USERPROFILE"
	}
	return "HOME"
}

func TestSetHomeDir(t *testing.T) {
	key := homeVar()
	original, hadOriginal := os.LookupEnv(key)
	dir := t.TempDir()

	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
	if got, err := os.UserHomeDir(); err != nil || got != dir {
		t.Errorf("os.UserHomeDir() = %q, %v, want %q", got, err, dir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != hadOriginal || got != original {
		t.Errorf("after cleanup %s = %q (set %v), want %q (set %v)", key, got, has, original, hadOriginal)
	}
}
