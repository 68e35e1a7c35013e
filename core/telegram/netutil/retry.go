// Package netutil classifies network errors from Bot API calls.
package netutil

import (
	"errors"
	"net"
)

// ShouldRetry reports whether err is a transient dial or timeout failure.
// *url.Error and *net.OpError both unwrap, so errors.As reaches the cause.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
