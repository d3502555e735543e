// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager creation and endpoint URL formatting
package discovery

import (
	"testing"
)

func TestNewManager(t *testing.T) {
	config := Config{
		ListenerName: "test-listener",
		Port:         9400,
	}

	mgr := NewManager(config)
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	if mgr.Servers() == nil {
		t.Error("expected servers channel to be initialized")
	}

	mgr.Stop()
}

func TestServerInfoEndpoint(t *testing.T) {
	info := &ServerInfo{
		Name: "relay-1",
		Host: "192.168.1.20",
		Port: 9400,
	}

	want := "ws://192.168.1.20:9400/relay"
	if got := info.Endpoint(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
