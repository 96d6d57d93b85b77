// Package runtime is the worker's event loop: session connectors queue
// events, the loop dispatches them to the assistant.
package runtime

import (
	"context"
	"log"
	"sync"

	"NexiAssistant/app/agent"
	"NexiAssistant/app/metrics"
)

type Runtime struct {
	mu        sync.Mutex
	assistant *agent.Nexi
	metrics   *metrics.Metrics
	events    chan Event
	ctx       context.Context
}

func NewRuntime(assistant *agent.Nexi, m *metrics.Metrics) *Runtime {
	return &Runtime{
		assistant: assistant,
		metrics:   m,
		events:    make(chan Event, 100),
	}
}

// Start runs the event loop until ctx is canceled. Blocking.
func (r *Runtime) Start(ctx context.Context) {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Runtime stopping")
			return
		case ev := <-r.events:
			r.handleEvent(ev)
		}
	}
}

func (r *Runtime) handleEvent(ev Event) {
	handler := ev.HandlerFunc
	if handler == nil {
		handler = EventsHandlerFuncDefault[ev.Type]
	}
	if handler == nil {
		log.Printf("⚠️ No handler for event type %q", ev.Type)
		return
	}
	handler(r, ev)
}

func (r *Runtime) QueueEvent(event Event) {
	select {
	case r.events <- event:
	default:
		log.Print("⚠️ Event queue is full, dropping event")
	}
}
