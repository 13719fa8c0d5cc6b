// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for trove.
//
// Every command receives the App composition root, which loads the
// configuration once per invocation and assembles the catalogs on first use.
// Commands that only touch configuration never scan anything.
package cmd
