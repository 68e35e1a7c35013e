package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	read := &net.OpError{Op: "read", Net: "tcp", Err: timeoutErr{}}

	assert.False(t, ShouldRetry(nil))
	assert.False(t, ShouldRetry(errors.New("bad request")))
	assert.False(t, ShouldRetry(context.Canceled))
	assert.True(t, ShouldRetry(dial))
	assert.True(t, ShouldRetry(&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: dial}))
	assert.True(t, ShouldRetry(read))
	assert.True(t, ShouldRetry(&net.DNSError{Err: "timeout", IsTimeout: true}))
	assert.False(t, ShouldRetry(&net.DNSError{Err: "no such host", IsNotFound: true}))
}
