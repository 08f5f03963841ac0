// Package resolver implements the descriptor resolver (C3): turning a
// set of LV2 bundle paths plus a plugin selector (URI or numeric ID)
// into a validated lv2model.PluginDescriptor.
package resolver

import "hash/crc32"

// idMask clears the top bit of every byte of the CRC32, because some
// VST hosts reject plugin IDs containing bytes above 0x7f.
const idMask uint32 = 0x7f7f7f7f

// URIToID computes the 32-bit VST unique ID the spec assigns a plugin:
// CRC32-IEEE of its URI with the high bit of each byte cleared. The
// exact polynomial and masking are wire format, not a design choice, so
// this stays on the standard library rather than a third-party hash
// package.
func URIToID(uri string) uint32 {
	return crc32.ChecksumIEEE([]byte(uri)) & idMask
}
