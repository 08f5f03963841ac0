package bridge

import "unsafe"

// eRect mirrors vst2's ERect{int16 top,left,bottom,right} layout, used
// only to answer effEditGetRect. The bridge reports a fixed placeholder
// size: an actual LV2 UI surface (X11/Cocoa/Windows embedding) is a
// windowing-toolkit concern outside this package's scope — editor.go
// only owns the ring-buffer plumbing described in spec §5's UI/main
// thread role (drain ctrl_to_ui/atom_to_ui, push atom_from_ui).
type eRect struct {
	top, left, bottom, right int16
}

const (
	defaultEditorWidth  = 400
	defaultEditorHeight = 300
)

// editGetRect answers effEditGetRect by writing the address of a fixed
// rect into the host-supplied ERect** out-param.
func (c *Core) editGetRect(ptr unsafe.Pointer) int64 {
	if ptr == nil {
		return 0
	}
	c.rect = eRect{top: 0, left: 0, bottom: defaultEditorHeight, right: defaultEditorWidth}
	*(*unsafe.Pointer)(ptr) = unsafe.Pointer(&c.rect)
	return 1
}

// editOpen marks the UI as open: from this point process() publishes
// ctrl_to_ui/atom_to_ui traffic instead of silently dropping it.
func (c *Core) editOpen() int64 {
	c.mu.Lock()
	c.uiOpen = true
	c.uiSync = true // spec §4.5.4 step 9: full state resync on open
	c.mu.Unlock()
	return 1
}

func (c *Core) editClose() int64 {
	c.mu.Lock()
	c.uiOpen = false
	c.ctrlToUI.Reset()
	c.atomToUI.Reset()
	c.mu.Unlock()
	return 0
}

// editIdle is the host's periodic UI-thread pump. It does not render
// anything itself (no UI toolkit is wired into this package); it only
// drains what the audio thread queued so a real front end reading
// ctrl_to_ui/atom_to_ui via the same API would see it promptly.
func (c *Core) editIdle() {
	for {
		frame, ok := c.ctrlToUI.ReadFrame()
		if !ok {
			break
		}
		_ = frame // a real UI decodes {port uint32, value float32} here
	}
	for {
		frame, ok := c.atomToUI.ReadFrame()
		if !ok {
			break
		}
		_ = frame
	}
}

// PushUIAtom lets a hosted UI forward a user gesture (e.g. a note
// preview, a patch:Set message) back into the plugin's next process
// cycle, via atom_from_ui.
func (c *Core) PushUIAtom(data []byte) bool {
	return c.atomFromUI.TryWriteFrame(data)
}
