// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/benjaminhottell/odcsv/internal/uno"
)

// switchingDesktop returns a different document per load, so one batch
// can mix successes and failures.
type switchingDesktop struct {
	docs  []uno.Document
	errs  []error
	loads int
}

func (d *switchingDesktop) LoadComponent(fileURL string, props []uno.Property) (uno.Document, error) {
	i := d.loads
	d.loads++
	if d.errs[i] != nil {
		return nil, d.errs[i]
	}
	return d.docs[i], nil
}

func TestConvertAll(t *testing.T) {
	good := newFakeDocument("A", "B")
	desktop := &switchingDesktop{
		docs: []uno.Document{good, nil},
		errs: []error{nil, errors.New("corrupt document")},
	}

	var log bytes.Buffer
	result := ConvertAll(New(desktop), []string{"good.ods", "bad.ods"}, t.TempDir(), Options{}, &log)

	if result.Converted() != 1 {
		t.Errorf("converted = %d, want 1", result.Converted())
	}
	if result.Failed() != 1 {
		t.Errorf("failed = %d, want 1", result.Failed())
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if len(result.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(result.Files))
	}
	if len(result.Files[0].Outputs) != 2 {
		t.Errorf("first file outputs = %v, want 2", result.Files[0].Outputs)
	}
	if result.Files[1].Err == nil {
		t.Error("second file should carry its error")
	}

	output := log.String()
	if !strings.Contains(output, "converted: good.ods (2 sheets)") {
		t.Errorf("missing converted line in %q", output)
	}
	if !strings.Contains(output, "failed:    bad.ods") {
		t.Errorf("missing failed line in %q", output)
	}
	if !strings.Contains(output, "Batch summary: 1 converted, 1 failed (total: 2)") {
		t.Errorf("missing summary in %q", output)
	}
}

func TestConvertAll_SingleInputHasNoSummary(t *testing.T) {
	desktop := &fakeDesktop{doc: newFakeDocument("A")}

	var log bytes.Buffer
	result := ConvertAll(New(desktop), []string{"book.ods"}, t.TempDir(), Options{}, &log)

	if result.HasFailures() {
		t.Errorf("unexpected failures: %+v", result.Files)
	}
	if strings.Contains(log.String(), "Batch summary") {
		t.Errorf("single-input run should not print a summary: %q", log.String())
	}
}
