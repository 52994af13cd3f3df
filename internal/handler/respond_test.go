package handler

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"ipv4 with port", "10.0.0.2:5555", "", "10.0.0.2"},
		{"ipv6 with port", "[2001:db8::1]:5555", "", "2001:db8::1"},
		{"bare ipv6", "2001:db8::1", "", "2001:db8::1"},
		{"forwarded single", "10.0.0.2:5555", "203.0.113.9", "203.0.113.9"},
		{"forwarded chain takes first hop", "10.0.0.2:5555", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(r); got != tt.want {
				t.Errorf("clientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}
