// SPDX-License-Identifier: MPL-2.0

// Package catalog is the object and indexing core of the launcher.
//
// Everything the user sees is an Item, everything an Item can do is an
// Operation, and every browsable collection of Items is a Provider. Static
// providers are scanned once and replayed from a Cache until rescanned;
// dynamic providers are enumerated on every request. Union and Catalogs
// compose providers into the root of the navigation tree, and Navigator
// walks that tree by following factory operations and parent links.
//
// Provider identity is the canonical id: two providers built from the same
// configuration share one cache entry, one scan and one refresh.
package catalog
