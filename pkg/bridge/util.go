package bridge

import (
	"fmt"
	"unsafe"
)

// ptrTo returns the address of a float32 as a void* for ConnectPort.
func ptrTo(f *float32) unsafe.Pointer {
	return unsafe.Pointer(f)
}

// bytesPtr returns the address of a byte slice's backing array as a
// void* for ConnectPort. b must not be empty or reallocated afterward.
func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// scheduleWork is the worker:schedule feature's Go-side implementation:
// the plugin calls this (via the C trampoline) from the audio thread to
// defer work off to pkg/worker.Worker.
func (c *Core) scheduleWork(data []byte) error {
	if c.worker == nil {
		return fmt.Errorf("bridge: worker:schedule called but plugin declared no worker interface")
	}
	return c.worker.Schedule(data)
}

// Work, WorkResponse, and EndRun satisfy pkg/worker.Interface, routing
// the worker goroutine's calls into the plugin's worker:interface.
func (c *Core) Work(respond func([]byte) error, data []byte) error {
	return c.workerIface.Work(respond, data)
}

func (c *Core) WorkResponse(data []byte) error {
	return c.workerIface.WorkResponse(data)
}

func (c *Core) EndRun() {
	if c.workerIface != nil {
		c.workerIface.EndRun()
	}
}
