// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uno

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFileURL(t *testing.T) {
	t.Run("absolute path", func(t *testing.T) {
		got, err := ToFileURL("/tmp/out/Revenue.csv")
		require.NoError(t, err)
		assert.Equal(t, "file:///tmp/out/Revenue.csv", got)
	})

	t.Run("relative path is absolutized", func(t *testing.T) {
		got, err := ToFileURL("book.ods")
		require.NoError(t, err)

		wd, err := filepath.Abs(".")
		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.ToSlash(wd)+"/book.ods", got)
	})

	t.Run("special characters are escaped", func(t *testing.T) {
		got, err := ToFileURL("/tmp/Q1 Report.csv")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(got, "/Q1%20Report.csv"), "got %q", got)
	})
}
