// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uno

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
)

// socketResolver is the production Resolver. It dials the TCP endpoint
// named by the connect URL and binds the server's desktop capability
// over the connection.
type socketResolver struct{}

func (socketResolver) Resolve(connectURL string) (Desktop, error) {
	host, port, err := parseConnectURL(connectURL)
	if err != nil {
		return nil, err
	}
	conn, err := net.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}
	return &bridgeDesktop{conn: &bridgeConn{conn: conn}}, nil
}

// bridgeConn frames remote calls over the wire. Each call is one
// length-prefixed JSON envelope and one length-prefixed JSON reply; the
// framing is a private detail of this binding and never visible above
// the Resolver seam.
type bridgeConn struct {
	conn net.Conn
}

// request is the call envelope. Object addresses the remote handle the
// method is invoked on ("desktop", or a document handle the server
// returned from a load).
type request struct {
	Object string          `json:"object"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// response is the reply envelope. A non-empty Error means the server
// raised an I/O failure; Code carries its native error code.
type response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   int32           `json:"code,omitempty"`
}

// call performs one blocking round trip. args and result may be nil.
func (b *bridgeConn) call(object, method string, args, result any) error {
	req := request{Object: object, Method: method}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("encoding %s call: %w", method, err)
		}
		req.Args = raw
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s call: %w", method, err)
	}

	if err := writeFrame(b.conn, payload); err != nil {
		return fmt.Errorf("sending %s call: %w", method, err)
	}
	reply, err := readFrame(b.conn)
	if err != nil {
		return fmt.Errorf("reading %s reply: %w", method, err)
	}

	var resp response
	if err := json.Unmarshal(reply, &resp); err != nil {
		return fmt.Errorf("decoding %s reply: %w", method, err)
	}
	if resp.Error != "" {
		return &RemoteError{Op: method, Code: resp.Code}
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}

func (b *bridgeConn) Close() error { return b.conn.Close() }

// maxFrame bounds reply sizes; replies here are handles and status
// payloads, never document content.
const maxFrame = 1 << 20

func writeFrame(conn net.Conn, payload []byte) error {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(payload)))
	if _, err := conn.Write(size[:]); err != nil {
		return err
	}
	_, err := conn.Write(payload)
	return err
}

func readFrame(conn net.Conn) ([]byte, error) {
	var size [4]byte
	if _, err := readFull(conn, size[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(size[:])
	if n > maxFrame {
		return nil, fmt.Errorf("reply frame too large: %d bytes", n)
	}
	buf := make([]byte, n)
	if _, err := readFull(conn, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// bridgeDesktop implements Desktop over a bridgeConn. Closing it closes
// the underlying connection; Session.Close reaches it through the
// io.Closer assertion.
type bridgeDesktop struct {
	conn *bridgeConn
}

func (d *bridgeDesktop) LoadComponent(fileURL string, props []Property) (Document, error) {
	args := struct {
		URL         string     `json:"url"`
		TargetFrame string     `json:"targetFrame"`
		SearchFlags int        `json:"searchFlags"`
		Properties  []Property `json:"properties,omitempty"`
	}{URL: fileURL, TargetFrame: "_blank", Properties: props}

	var result struct {
		Handle      string `json:"handle"`
		Refreshable bool   `json:"refreshable"`
	}
	if err := d.conn.call("desktop", "loadComponentFromURL", args, &result); err != nil {
		return nil, err
	}
	doc := &bridgeDocument{conn: d.conn, handle: result.Handle}
	if result.Refreshable {
		return &refreshableDocument{bridgeDocument: doc}, nil
	}
	return doc, nil
}

func (d *bridgeDesktop) Close() error { return d.conn.Close() }

// bridgeDocument implements Document for a handle held by the server.
type bridgeDocument struct {
	conn   *bridgeConn
	handle string
}

func (d *bridgeDocument) SheetCount() (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := d.conn.call(d.handle, "getSheetCount", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (d *bridgeDocument) Sheet(index int) (Sheet, error) {
	args := struct {
		Index int `json:"index"`
	}{Index: index}
	var result struct {
		Name string `json:"name"`
	}
	if err := d.conn.call(d.handle, "getSheetByIndex", args, &result); err != nil {
		return nil, err
	}
	return &bridgeSheet{index: index, name: result.Name}, nil
}

func (d *bridgeDocument) SetActiveSheet(s Sheet) error {
	bs, ok := s.(*bridgeSheet)
	if !ok {
		return fmt.Errorf("sheet %T does not belong to this document", s)
	}
	args := struct {
		Index int `json:"index"`
	}{Index: bs.index}
	return d.conn.call(d.handle, "setActiveSheet", args, nil)
}

func (d *bridgeDocument) StoreToURL(fileURL string, props []Property) error {
	args := struct {
		URL        string     `json:"url"`
		Properties []Property `json:"properties,omitempty"`
	}{URL: fileURL, Properties: props}
	return d.conn.call(d.handle, "storeToURL", args, nil)
}

func (d *bridgeDocument) Close(deliverOwnership bool) error {
	args := struct {
		DeliverOwnership bool `json:"deliverOwnership"`
	}{DeliverOwnership: deliverOwnership}
	return d.conn.call(d.handle, "close", args, nil)
}

// refreshableDocument wraps a document whose type supports recomputing
// content, surfacing the capability as the Refresher interface.
type refreshableDocument struct {
	*bridgeDocument
}

func (d *refreshableDocument) Refresh() error {
	return d.conn.call(d.handle, "refresh", nil, nil)
}

// bridgeSheet caches the index and name reported by the server; both
// are stable for the document's lifetime.
type bridgeSheet struct {
	index int
	name  string
}

func (s *bridgeSheet) Name() (string, error) { return s.name, nil }
