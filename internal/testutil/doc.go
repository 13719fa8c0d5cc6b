// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error.
//
// It covers environment variables (MustSetenv, MustUnsetenv, SetHomeDir),
// fixture files (MustMkdirAll, MustWriteFile) and a manually advanced FakeClock.
package testutil
