// Package worker implements the bridge's worker service (C4): a
// background goroutine that serves a plugin's off-audio-thread work
// requests, grounded on original_source/src/worker.{h,cc}'s
// Lv2Worker — same requests/responses ring pair, same try-lock wakeup,
// same freewheeling bypass, reimplemented with a goroutine plus
// sync.Cond instead of pthreads.
package worker

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-lv2/lv2vst/pkg/ring"
)

// MaxPayload is the largest single work request or response payload
// (spec §4.4: "requests (RT → worker, 4096 bytes)"). Schedule rejects a
// larger request with an error instead of truncating it; the worker
// loop keeps running and later requests are still served.
const MaxPayload = 4096

// ringCapacity is the fixed capacity of both request and response
// rings. TryWriteFrame needs 4+len(payload) bytes of WriteSpace, which
// tops out at capacity-1, so the ring must be sized strictly larger
// than MaxPayload+4 or a legal max-size payload could never be
// scheduled even against an empty ring.
const ringCapacity = MaxPayload + 5

// Interface is the subset of the LV2 worker extension a plugin exposes.
// Respond is supplied by the Worker to Work, mirroring the C
// LV2_Worker_Respond_Function passed through the opaque handle.
type Interface interface {
	Work(respond func(data []byte) error, data []byte) error
	WorkResponse(data []byte) error
	EndRun()
}

// Worker runs Interface.Work calls off the audio thread.
type Worker struct {
	requests  *ring.Ring
	responses *ring.Ring

	// reqBuf/respBuf are pre-allocated scratch space ReadFrameInto reads
	// into, so the worker goroutine's draining of requests (loop) and the audio
	// thread's draining of responses (EmitResponse) never allocate.
	reqBuf  []byte
	respBuf []byte

	iface Interface

	mu   sync.Mutex
	cond *sync.Cond
	run  bool

	freewheeling atomic.Bool

	done chan struct{}
}

// New starts the worker goroutine immediately; Close must be called
// exactly once to stop it.
func New(iface Interface) *Worker {
	w := &Worker{
		requests:  ring.New(ringCapacity),
		responses: ring.New(ringCapacity),
		reqBuf:    make([]byte, MaxPayload),
		respBuf:   make([]byte, MaxPayload),
		iface:     iface,
		run:       true,
		done:      make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// SetFreewheeling toggles offline/export mode, where Schedule runs
// Work synchronously on the calling (RT) thread instead of queueing.
func (w *Worker) SetFreewheeling(yn bool) {
	w.freewheeling.Store(yn)
}

// Schedule is called from the audio thread via the plugin's worker
// feature pointer. It never blocks: the condvar is only signaled when
// a try-lock succeeds, matching pthread_mutex_trylock in the original.
func (w *Worker) Schedule(data []byte) error {
	if len(data) > MaxPayload {
		return fmt.Errorf("worker: request of %d bytes exceeds %d byte limit", len(data), MaxPayload)
	}
	if w.freewheeling.Load() {
		return w.iface.Work(w.respond, data)
	}
	if !w.requests.TryWriteFrame(data) {
		return errors.New("worker: request ring full, message dropped")
	}
	if w.mu.TryLock() {
		w.cond.Signal()
		w.mu.Unlock()
	}
	return nil
}

// respond is passed to Interface.Work as its LV2_Worker_Respond_Function
// equivalent; it may be called zero or more times per Work invocation.
func (w *Worker) respond(data []byte) error {
	if !w.responses.TryWriteFrame(data) {
		return errors.New("worker: response ring full, response dropped")
	}
	return nil
}

// EmitResponse is called from the audio thread at the end of every
// process cycle: drain responses and invoke WorkResponse for each.
func (w *Worker) EmitResponse() {
	for {
		n, ok := w.responses.ReadFrameInto(w.respBuf)
		if !ok {
			return
		}
		if err := w.iface.WorkResponse(w.respBuf[:n]); err != nil {
			return
		}
	}
}

// EndRun invokes the plugin's end_run hook, if it declared one.
func (w *Worker) EndRun() {
	w.iface.EndRun()
}

func (w *Worker) loop() {
	w.mu.Lock()
	for {
		for w.run && w.requests.ReadSpace() == 0 {
			w.cond.Wait()
		}
		if !w.run && w.requests.ReadSpace() == 0 {
			w.mu.Unlock()
			close(w.done)
			return
		}
		w.mu.Unlock()

		if n, ok := w.requests.ReadFrameInto(w.reqBuf); ok {
			if err := w.iface.Work(w.respond, w.reqBuf[:n]); err != nil {
				close(w.done)
				return
			}
		}

		w.mu.Lock()
	}
}

// Close stops the worker goroutine and waits for it to exit; requests
// already queued are run before the goroutine exits.
func (w *Worker) Close() {
	w.mu.Lock()
	w.run = false
	w.cond.Signal()
	w.mu.Unlock()
	<-w.done
}
