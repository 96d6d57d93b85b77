// Package clients connects the assistant runtime to the outside world: the
// real-time audio room and any text channels. Connectors translate their
// transport's events into runtime events and deliver replies back.
package clients

import (
	"NexiAssistant/app/runtime"
)

type Interface interface {
	// Subscribe attaches the connector to the runtime and opens its
	// transport.
	Subscribe(rt *runtime.Runtime) error
}

type Client struct {
	runtime *runtime.Runtime
}
