// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"time"
)

// FileResult is the outcome of converting one input document.
type FileResult struct {
	Input    string
	Outputs  []string
	Err      error
	Started  time.Time
	Finished time.Time
}

// Result summarizes a batch conversion run.
type Result struct {
	Files []FileResult
}

// Converted returns the number of inputs converted successfully.
func (r Result) Converted() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of inputs that failed.
func (r Result) Failed() int {
	return len(r.Files) - r.Converted()
}

// HasFailures reports whether any input failed to convert.
func (r Result) HasFailures() bool {
	return r.Failed() > 0
}

// ConvertAll converts each input into outputDir sequentially over one
// session, writing per-file status lines to w and a summary when more
// than one input was given. A failing input is reported and counted;
// remaining inputs still run.
func ConvertAll(c *Converter, inputs []string, outputDir string, opts Options, w io.Writer) Result {
	result := Result{Files: make([]FileResult, 0, len(inputs))}

	for _, input := range inputs {
		fr := FileResult{Input: input, Started: time.Now()}
		fr.Outputs, fr.Err = c.Convert(input, outputDir, opts)
		fr.Finished = time.Now()

		if fr.Err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", input, fr.Err)
		} else {
			fmt.Fprintf(w, "converted: %s (%d sheets)\n", input, len(fr.Outputs))
		}
		result.Files = append(result.Files, fr)
	}

	if len(inputs) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
			result.Converted(), result.Failed(), len(result.Files))
	}
	return result
}
