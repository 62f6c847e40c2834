// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives the office server through the spreadsheet
// export workflow: format-aware load, optional refresh, one CSV file
// per sheet in sheet order, and guaranteed release of the remote
// document handle.
package convert

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/benjaminhottell/odcsv/internal/uno"
	"github.com/benjaminhottell/odcsv/pkg/types"
)

const outputExt = "csv"

// sheetDelay is the pause inserted before each sheet in slow mode.
// Tests replace sleep to avoid real waits.
const sheetDelay = time.Second

var sleep = time.Sleep

// Options control a single conversion run.
type Options struct {
	// Slow pauses one second before processing each sheet, throttling
	// on-screen conversions that would otherwise flash rapidly.
	Slow bool

	// KeepOpen leaves the document open on the server after the last
	// sheet is exported. By default the document is force-closed.
	KeepOpen bool

	// IgnoreSheetNames names output files sheet-1.csv, sheet-2.csv, ...
	// instead of using each sheet's own name.
	IgnoreSheetNames bool

	// Filters overrides the built-in import filter table, keyed by
	// lower-cased extension.
	Filters map[string]types.FilterSpec
}

// Error reports a conversion failure that did not originate in the
// office server.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("cannot convert %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Converter exports spreadsheets through a desktop capability. One
// converter serves one session; it holds no state beyond the desktop
// and is used for one document at a time.
type Converter struct {
	desktop uno.Desktop
}

// New returns a Converter that opens documents through desktop.
func New(desktop uno.Desktop) *Converter {
	return &Converter{desktop: desktop}
}

// Convert loads the spreadsheet at inputPath, exports every sheet to a
// CSV file in outputDir, and returns the written paths in sheet order.
//
// The document is closed on the server before Convert returns on every
// path after a successful load, including mid-loop export failures,
// unless opts.KeepOpen is set. Server failures during load or export
// surface verbatim (as *uno.RemoteError from the production binding)
// with no retry; a failure at sheet K leaves sheets 1..K-1 on disk.
func (c *Converter) Convert(inputPath, outputDir string, opts Options) (outputs []string, err error) {
	inputURL, err := uno.ToFileURL(inputPath)
	if err != nil {
		return nil, &Error{Path: inputPath, Err: err}
	}

	doc, err := c.desktop.LoadComponent(inputURL, importFilterFor(inputPath, opts.Filters))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", inputPath, err)
	}
	defer func() {
		if opts.KeepOpen {
			return
		}
		if cerr := doc.Close(true); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", inputPath, cerr)
		}
	}()

	// Recompute formulas and links when the document type supports it.
	// Absence of the capability is not an error; a failing refresh is.
	if r, ok := doc.(uno.Refresher); ok {
		if err := r.Refresh(); err != nil {
			return nil, fmt.Errorf("refreshing %s: %w", inputPath, err)
		}
	}

	count, err := doc.SheetCount()
	if err != nil {
		return nil, fmt.Errorf("counting sheets of %s: %w", inputPath, err)
	}

	for i := 0; i < count; i++ {
		if opts.Slow {
			sleep(sheetDelay)
		}

		sheet, err := doc.Sheet(i)
		if err != nil {
			return nil, fmt.Errorf("fetching sheet %d of %s: %w", i, inputPath, err)
		}

		// The export filter serializes the active sheet when the
		// document has more than one, so each sheet is activated
		// immediately before its store.
		if err := doc.SetActiveSheet(sheet); err != nil {
			return nil, fmt.Errorf("activating sheet %d of %s: %w", i, inputPath, err)
		}

		base := fmt.Sprintf("sheet-%d", i+1)
		if !opts.IgnoreSheetNames {
			name, err := sheet.Name()
			if err != nil {
				return nil, fmt.Errorf("naming sheet %d of %s: %w", i, inputPath, err)
			}
			base = name
		}

		outPath := filepath.Join(outputDir, base+"."+outputExt)
		outURL, err := uno.ToFileURL(outPath)
		if err != nil {
			return nil, &Error{Path: inputPath, Err: err}
		}

		if err := doc.StoreToURL(outURL, filterProps(csvExport)); err != nil {
			return nil, fmt.Errorf("exporting sheet %q of %s: %w", base, inputPath, err)
		}
		outputs = append(outputs, outPath)
	}

	return outputs, nil
}
