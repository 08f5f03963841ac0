package bridge

import "unsafe"

// shellGetNextPlugin implements effShellGetNextPlugin (spec §4.5.6):
// on each call it writes the next enumerated plugin's name (truncated
// to 63 characters plus a NUL) into the host's buffer and returns that
// plugin's id; the call after the last entry returns 0 without
// touching the buffer, signalling end of iteration to the host.
func (c *Core) shellGetNextPlugin(ptr unsafe.Pointer) int64 {
	if c.shellResolver == nil {
		return 0
	}
	if c.shellEntries == nil {
		entries, err := c.shellResolver.Enumerate(c.shellBundles, c.shellWhitelist, c.shellBlacklist)
		if err != nil {
			return 0
		}
		c.shellEntries = entries
		c.shellIdx = 0
	}
	if c.shellIdx >= len(c.shellEntries) {
		c.shellEntries = nil // reset so a later open-shell call starts over
		return 0
	}

	entry := c.shellEntries[c.shellIdx]
	c.shellIdx++

	if ptr != nil {
		n := copy(c.shellNameBuf[:len(c.shellNameBuf)-1], entry.Name)
		c.shellNameBuf[n] = 0
		dst := unsafe.Slice((*byte)(ptr), len(c.shellNameBuf))
		copy(dst, c.shellNameBuf[:])
	}
	return int64(entry.ID)
}
