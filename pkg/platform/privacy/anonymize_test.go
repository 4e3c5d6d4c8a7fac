package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ipv4 address", "192.168.1.47", "192.168.1.0"},
		{"ipv4 with port", "192.168.1.47:52311", "192.168.1.0"},
		{"ipv4 localhost", "127.0.0.1", "127.0.0.0"},
		{"ipv4-mapped ipv6", "::ffff:10.1.2.3", "10.1.2.0"},
		{"ipv6 full address", "2001:db8:85a3:0000:0000:8a2e:0370:7334", "2001:db8:85a3::"},
		{"ipv6 with port", "[2001:db8:85a3::8a2e:370:7334]:443", "2001:db8:85a3::"},
		{"ipv6 loopback", "::1", "::"},
		{"ipv6 link-local with zone", "fe80::1%eth0", "fe80::"},
		{"empty string", "", "unknown"},
		{"unknown value", "unknown", "unknown"},
		{"invalid ip", "not-an-ip", "invalid"},
		{"partial ip", "192.168.1", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestAnonymizeIPGroupsByNetwork(t *testing.T) {
	for _, ip := range []string{"192.168.1.1", "192.168.1.100", "192.168.1.255:80"} {
		assert.Equal(t, "192.168.1.0", AnonymizeIP(ip), ip)
	}
	assert.NotEqual(t, AnonymizeIP("192.168.1.47"), AnonymizeIP("192.168.2.47"))
}
