package clients

import (
	"net/http"
	"testing"
)

func TestApplyTransportPatch(t *testing.T) {
	ApplyTransportPatch()
	ApplyTransportPatch() // idempotent

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		t.Fatalf("default transport replaced with %T", http.DefaultTransport)
	}
	if transport.Proxy == nil {
		t.Error("patched transport must resolve the proxy from the environment")
	}
}
