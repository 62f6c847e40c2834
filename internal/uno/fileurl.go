// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uno

import (
	"net/url"
	"path/filepath"
)

// ToFileURL converts a local path to the absolute file URL form the
// server requires for load and store operations.
func ToFileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
