// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uno

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver hands out a canned desktop or error.
type stubResolver struct {
	desktop Desktop
	err     error
	gotURL  string
}

func (r *stubResolver) Resolve(connectURL string) (Desktop, error) {
	r.gotURL = connectURL
	if r.err != nil {
		return nil, r.err
	}
	return r.desktop, nil
}

// closableDesktop records Close calls from Session.Close.
type closableDesktop struct {
	closed int
}

func (d *closableDesktop) LoadComponent(fileURL string, props []Property) (Document, error) {
	return nil, errors.New("not implemented")
}

func (d *closableDesktop) Close() error {
	d.closed++
	return nil
}

func TestConnectWith(t *testing.T) {
	t.Run("successful resolve yields a session", func(t *testing.T) {
		desktop := &closableDesktop{}
		r := &stubResolver{desktop: desktop}

		session, err := ConnectWith("calc-host", 8100, r)
		require.NoError(t, err)
		assert.Equal(t, "calc-host", session.Host)
		assert.Equal(t, 8100, session.Port)
		assert.Same(t, desktop, session.Desktop.(*closableDesktop))
		assert.Equal(t, "uno:socket,host=calc-host,port=8100;urp;StarOffice.ComponentContext", r.gotURL)

		require.NoError(t, session.Close())
		assert.Equal(t, 1, desktop.closed)
	})

	t.Run("resolver failure becomes ConnectionError", func(t *testing.T) {
		r := &stubResolver{err: errors.New("connection refused")}

		_, err := ConnectWith("calc-host", 8100, r)
		require.Error(t, err)

		var cerr *ConnectionError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "calc-host", cerr.Host)
		assert.Equal(t, 8100, cerr.Port)
		assert.Contains(t, cerr.Error(), "calc-host")
		assert.Contains(t, cerr.Error(), "8100")
	})
}

func TestConnect_NoListener(t *testing.T) {
	// Grab a free port and release it so nothing is listening there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	_, err = Connect("127.0.0.1", port)
	require.Error(t, err)

	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "127.0.0.1", cerr.Host)
	assert.Equal(t, port, cerr.Port)
}

func TestParseConnectURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "round trip",
			url:      ConnectURL("localhost", 2002),
			wantHost: "localhost",
			wantPort: 2002,
		},
		{
			name:     "explicit address",
			url:      "uno:socket,host=10.0.0.5,port=8100;urp;StarOffice.ComponentContext",
			wantHost: "10.0.0.5",
			wantPort: 8100,
		},
		{name: "missing scheme", url: "socket,host=a,port=1;urp;X", wantErr: true},
		{name: "missing port", url: "uno:socket,host=a;urp;X", wantErr: true},
		{name: "bad port", url: "uno:socket,host=a,port=nope;urp;X", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := parseConnectURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}

func TestSessionClose_NonClosingDesktop(t *testing.T) {
	r := &stubResolver{desktop: fakeDesktopFunc(nil)}
	session, err := ConnectWith("localhost", DefaultPort, r)
	require.NoError(t, err)
	assert.NoError(t, session.Close())
}

// fakeDesktopFunc adapts a function to Desktop without an io.Closer.
type fakeDesktopFunc func(string) Document

func (f fakeDesktopFunc) LoadComponent(fileURL string, props []Property) (Document, error) {
	if f == nil {
		return nil, errors.New("no document")
	}
	return f(fileURL), nil
}
