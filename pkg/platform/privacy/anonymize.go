// Package privacy masks personal data before it reaches logs.
package privacy

import "net/netip"

// AnonymizeIP truncates a client address to its network: /24 for IPv4 and
// /48 for IPv6. It accepts a bare address or the host:port form found in
// http.Request.RemoteAddr. Empty input yields "unknown" and unparseable
// input yields "invalid".
func AnonymizeIP(addr string) string {
	if addr == "" || addr == "unknown" {
		return "unknown"
	}

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		addrPort, perr := netip.ParseAddrPort(addr)
		if perr != nil {
			return "invalid"
		}
		ip = addrPort.Addr()
	}
	ip = ip.Unmap().WithZone("")

	bits := 48
	if ip.Is4() {
		bits = 24
	}
	prefix, err := ip.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}
