// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uno connects to a running office-suite automation server and
// exposes the handful of remote capabilities this tool drives: resolving
// the server's desktop, loading a spreadsheet document, walking its
// sheets, and exporting the active sheet.
//
// The remote object model is deliberately narrow. The server exposes far
// more than this, but everything the conversion workflow needs fits in
// Desktop, Document and Sheet, which keeps the socket binding swappable
// and the whole layer mockable.
//
// Remote calls carry no timeout or cancellation: each one is a blocking
// round trip, and a hung server blocks the caller indefinitely. This is
// a known limitation.
package uno

import "fmt"

// Property is one (name, value) pair passed to the remote service, e.g.
// {FilterName, "Text (encoded)"} or {FilterOptions, "utf8"}.
type Property struct {
	Name  string
	Value string
}

// Desktop is the server capability used to open documents.
type Desktop interface {
	// LoadComponent loads the document at the given file URL into a new
	// top-level frame, applying the given load properties, and returns a
	// handle to it. It blocks until the server finishes loading.
	LoadComponent(fileURL string, props []Property) (Document, error)
}

// Document is a handle to a spreadsheet document open on the server.
type Document interface {
	// SheetCount returns the number of sheets in the document.
	SheetCount() (int, error)

	// Sheet returns the sheet at the given zero-based index.
	Sheet(index int) (Sheet, error)

	// SetActiveSheet makes the given sheet the document's active sheet.
	// Whole-document export filters operate on the active sheet when the
	// document has more than one.
	SetActiveSheet(s Sheet) error

	// StoreToURL writes the document's current content to the given file
	// URL using the given export filter properties.
	StoreToURL(fileURL string, props []Property) error

	// Close releases the document on the server. When deliverOwnership is
	// true any unsaved state is discarded without prompting.
	Close(deliverOwnership bool) error
}

// Sheet is one worksheet of an open document.
type Sheet interface {
	// Name returns the sheet's display name.
	Name() (string, error)
}

// Refresher is implemented by documents that support recomputing their
// content (formulas, links). Callers probe for it with a type assertion;
// a document that does not implement it simply cannot be refreshed,
// which is not an error.
type Refresher interface {
	Refresh() error
}

// ConnectionError reports a failed handshake with the automation server.
// It carries the endpoint so callers can render an actionable diagnostic.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to office server at host %q and port %d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RemoteError reports an I/O failure raised by the server itself during
// a load or store operation. Code is the server's native error code,
// surfaced verbatim.
type RemoteError struct {
	Op   string
	Code int32
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("office server rejected %s: error code %d", e.Op, e.Code)
}
