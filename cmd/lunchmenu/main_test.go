package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/lunchmenu"
	main "github.com/fwojciec/lunchmenu/cmd/lunchmenu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one CLI invocation against the database at dbPath.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = dbPath
	m.Stdin = strings.NewReader("")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("manages restaurants", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		out, _, err := run(t, db, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No restaurants found.")

		out, _, err = run(t, db, "add", "U Fleků", "https://ufleku.cz/menu", "-a", "https://ufleku.cz/menu.pdf", "--js")
		require.NoError(t, err)
		assert.Contains(t, out, `Added restaurant "U Fleků"`)

		out, _, err = run(t, db, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "U Fleků  https://ufleku.cz/menu  [js]")
		assert.Contains(t, out, "    or https://ufleku.cz/menu.pdf")

		_, _, err = run(t, db, "delete", "U Fleků")
		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))

		out, _, err = run(t, db, "delete", "U Fleků", "--force")
		require.NoError(t, err)
		assert.Contains(t, out, `Deleted restaurant "U Fleků"`)

		_, stderr, err := run(t, db, "delete", "U Fleků", "--force")
		assert.Equal(t, lunchmenu.ENOTFOUND, lunchmenu.ErrorCode(err))
		assert.Contains(t, stderr, "lunchmenu list")
	})

	t.Run("rejects an invalid restaurant URL", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		_, stderr, err := run(t, db, "add", "Lokál", "ftp://lokal.cz")

		assert.Equal(t, lunchmenu.EINVALID, lunchmenu.ErrorCode(err))
		assert.Contains(t, stderr, "error:")
	})

	t.Run("collects suggestions", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		out, _, err := run(t, db, "suggest", "Lokál", "--email", "petr@example.cz", "--url", "https://lokal.cz/menu")
		require.NoError(t, err)
		assert.Contains(t, out, `Suggestion "Lokál" saved`)

		out, _, err = run(t, db, "suggestions")
		require.NoError(t, err)
		assert.Contains(t, out, "Lokál")
		assert.Contains(t, out, "    https://lokal.cz/menu")
		assert.Contains(t, out, "    from petr@example.cz")

		id := strings.Fields(out)[0]
		out, _, err = run(t, db, "dismiss", id)
		require.NoError(t, err)
		assert.Contains(t, out, "Dismissed suggestion "+id)

		out, _, err = run(t, db, "suggestions")
		require.NoError(t, err)
		assert.Equal(t, "No suggestions.\n", out)
	})

	t.Run("bumps the cache generation", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		out, _, err := run(t, db, "recache")
		require.NoError(t, err)
		first := out

		out, _, err = run(t, db, "recache")
		require.NoError(t, err)
		assert.NotEqual(t, first, out)
		assert.Contains(t, out, "Cache cleared (generation ")
	})

	t.Run("shows an empty menu list without restaurants", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "test.db")

		out, _, err := run(t, db, "menus", "--all")

		require.NoError(t, err)
		assert.Contains(t, out, "No restaurants found.")
	})

	t.Run("parses a local file without a database", func(t *testing.T) {
		t.Parallel()

		db := filepath.Join(t.TempDir(), "missing", "dir", "test.db")
		path := writeTemp(t, "menu.html", weekPage)

		out, _, err := run(t, db, "parse", path)

		require.NoError(t, err)
		assert.Contains(t, out, "- [pondělí] Guláš s knedlíkem … 165 Kč")
	})

	t.Run("applies a rules file", func(t *testing.T) {
		t.Parallel()

		rules := writeTemp(t, "rules.yaml", "extend:\n  noiseSubstrings:\n    - guláš\n")
		path := writeTemp(t, "menu.html", weekPage)

		out, _, err := run(t, filepath.Join(t.TempDir(), "test.db"), "--rules", rules, "parse", path)

		require.NoError(t, err)
		assert.NotContains(t, out, "Guláš")
		assert.Contains(t, out, "Svíčková na smetaně")
	})

	t.Run("fails on a missing rules file", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, filepath.Join(t.TempDir(), "test.db"), "--rules", filepath.Join(t.TempDir(), "nope.yaml"), "show-rules")

		assert.Equal(t, lunchmenu.ENOTFOUND, lunchmenu.ErrorCode(err))
		assert.Contains(t, stderr, "error:")
	})

	t.Run("reports a database that cannot be opened", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(t, filepath.Join(t.TempDir(), "missing", "dir", "test.db"), "list")

		require.Error(t, err)
		assert.Contains(t, stderr, "LUNCHMENU_DB")
	})
}
