package clients

import (
	"log"
	"net/http"
	"sync"
)

var transportPatchOnce sync.Once

// ApplyTransportPatch swaps the process-wide default HTTP transport for one
// that takes proxy settings from the environment. Must run before any
// connector dials out; SDKs that pass an explicit per-request proxy would
// otherwise bypass corporate egress on campus networks. Applied exactly once
// for the life of the process.
func ApplyTransportPatch() {
	transportPatchOnce.Do(func() {
		base, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			log.Println("⚠️ Default transport already replaced, skipping proxy patch")
			return
		}
		patched := base.Clone()
		patched.Proxy = http.ProxyFromEnvironment
		http.DefaultTransport = patched
		log.Println("🔧 HTTP transport patched to honor environment proxy settings")
	})
}
