package clients

import (
	"log"
	"sync"

	"NexiAssistant/app/runtime"
)

type Registry struct {
	mu      sync.RWMutex
	clients []Interface
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make([]Interface, 0),
	}
}

func (r *Registry) Register(client Interface, rt *runtime.Runtime) error {
	if err := client.Subscribe(rt); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append(r.clients, client)
	return nil
}

func (r *Registry) GetAll() []Interface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Interface, len(r.clients))
	copy(result, r.clients)
	return result
}

func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, client := range r.clients {
		if closer, ok := client.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Printf("⚠️ Error closing client: %v", err)
			}
		}
	}
	r.clients = make([]Interface, 0)
}
