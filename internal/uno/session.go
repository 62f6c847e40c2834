// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uno

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// DefaultHost is the host the office server listens on by default.
	DefaultHost = "localhost"
	// DefaultPort is the port the office server listens on by default.
	DefaultPort = 2002
)

// Resolver resolves a connect URL to the server's desktop capability.
// The production resolver dials the socket endpoint named by the URL;
// tests substitute fakes.
type Resolver interface {
	Resolve(connectURL string) (Desktop, error)
}

// DefaultResolver is the production socket binding. Package-level so
// alternative bindings can be installed without threading a Resolver
// through every caller.
var DefaultResolver Resolver = socketResolver{}

// Session is an established connection to the office automation server.
// A process opens one session and uses its Desktop for every document it
// converts. Sessions are not safe for concurrent use.
type Session struct {
	Host    string
	Port    int
	Desktop Desktop
}

// Connect establishes a session with the office server at host:port
// using the default resolver. There is a single synchronous handshake
// and no retry; an unreachable or rejecting server yields a
// *ConnectionError carrying the endpoint.
func Connect(host string, port int) (*Session, error) {
	return ConnectWith(host, port, DefaultResolver)
}

// ConnectWith is Connect with an explicit resolver.
func ConnectWith(host string, port int, r Resolver) (*Session, error) {
	desktop, err := r.Resolve(ConnectURL(host, port))
	if err != nil {
		return nil, &ConnectionError{Host: host, Port: port, Err: err}
	}
	return &Session{Host: host, Port: port, Desktop: desktop}, nil
}

// Close releases the session's transport, if the binding holds one.
// Documents already exported are unaffected.
func (s *Session) Close() error {
	if c, ok := s.Desktop.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ConnectURL builds the server connect URL for host:port, e.g.
// "uno:socket,host=localhost,port=2002;urp;StarOffice.ComponentContext".
func ConnectURL(host string, port int) string {
	return fmt.Sprintf("uno:socket,host=%s,port=%d;urp;StarOffice.ComponentContext", host, port)
}

// parseConnectURL extracts the host and port from a connect URL produced
// by ConnectURL.
func parseConnectURL(connectURL string) (host string, port int, err error) {
	rest, ok := strings.CutPrefix(connectURL, "uno:")
	if !ok {
		return "", 0, fmt.Errorf("not a uno connect URL: %q", connectURL)
	}
	transport, _, _ := strings.Cut(rest, ";")
	for _, part := range strings.Split(transport, ",") {
		if v, ok := strings.CutPrefix(part, "host="); ok {
			host = v
		}
		if v, ok := strings.CutPrefix(part, "port="); ok {
			port, err = strconv.Atoi(v)
			if err != nil {
				return "", 0, fmt.Errorf("bad port in connect URL %q: %w", connectURL, err)
			}
		}
	}
	if host == "" || port == 0 {
		return "", 0, fmt.Errorf("connect URL %q missing host or port", connectURL)
	}
	return host, port, nil
}
