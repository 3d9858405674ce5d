package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/lunchmenu"
)

// MenuStore exports menus as one markdown file per restaurant.
//
// Files are written to baseDir/name.tmp and moved to baseDir/name on
// Commit, so a reader never sees a half-written export.
type MenuStore struct {
	baseDir string
	name    string
}

// NewMenuStore creates a MenuStore exporting to baseDir/name.
func NewMenuStore(baseDir, name string) *MenuStore {
	return &MenuStore{baseDir: baseDir, name: name}
}

func (s *MenuStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *MenuStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes menu to the pending export.
func (s *MenuStore) Save(ctx context.Context, menu *lunchmenu.Menu) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slug := Slug(menu.Restaurant)
	if slug == "" {
		slug = Slug(menu.RestaurantID)
	}
	if slug == "" {
		return lunchmenu.Errorf(lunchmenu.EINVALID, "menu has no restaurant name")
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	path := filepath.Join(s.tempDir(), slug+".md")
	return os.WriteFile(path, []byte(FormatMenu(menu)), 0644)
}

// Commit replaces the previous export with the pending one.
func (s *MenuStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending export.
func (s *MenuStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// FormatMenu renders a menu with YAML frontmatter.
func FormatMenu(menu *lunchmenu.Menu) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "restaurant: %s\n", menu.Restaurant)
	fmt.Fprintf(&b, "source: %s\n", menu.SourceURL)
	fmt.Fprintf(&b, "fetched: %s\n", menu.FetchedAt.Format("2006-01-02 15:04"))
	if menu.Failure != nil {
		fmt.Fprintf(&b, "status: %s\n", menu.Failure.Code)
	}
	b.WriteString("---\n\n")
	b.WriteString(lunchmenu.FormatMenus([]*lunchmenu.Menu{menu}))
	b.WriteString("\n")
	return b.String()
}

// Slug turns a restaurant name into a file name: ASCII letters and digits
// joined by single dashes. "U Zlatého Tygra" becomes "u-zlateho-tygra".
func Slug(name string) string {
	ascii := lunchmenu.StripDiacritics(name)

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(ascii) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
