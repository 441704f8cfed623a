package store

import (
	"fmt"
	"os"
	"path/filepath"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/record"
)

// Kind names a record collection and its subdirectory.
type Kind string

const (
	KindRadical   Kind = "radicals"
	KindCharacter Kind = "characters"
)

// RecordExt is the file extension of every record.
const RecordExt = ".md"

// Layout names the three document roots. Every root has a radicals/ and a
// characters/ subdirectory holding one <key>.md per record.
type Layout struct {
	// Root holds the plain variant and is the only root read on load.
	Root     string
	VSCode   string
	Obsidian string
}

// RootFor returns the root that receives the given variant.
func (l Layout) RootFor(v record.Variant) string {
	switch v {
	case record.VariantVSCode:
		return l.VSCode
	case record.VariantObsidian:
		return l.Obsidian
	default:
		return l.Root
	}
}

// Dir returns the directory holding records of kind k in the variant's root.
func (l Layout) Dir(v record.Variant, k Kind) string {
	return filepath.Join(l.RootFor(v), string(k))
}

// Path returns the file path of a record.
func (l Layout) Path(v record.Variant, k Kind, key string) string {
	return filepath.Join(l.Dir(v, k), key+RecordExt)
}

// Validate checks that all three roots are set and distinct.
func (l Layout) Validate() error {
	seen := make(map[string]string, 3)
	for _, r := range []struct{ name, dir string }{
		{"root", l.Root}, {"vscode", l.VSCode}, {"obsidian", l.Obsidian},
	} {
		if r.dir == "" {
			return herrors.ValidationError(fmt.Sprintf("%s directory is empty", r.name), nil)
		}
		abs, err := filepath.Abs(r.dir)
		if err != nil {
			return herrors.ValidationError(fmt.Sprintf("resolve %s directory", r.name), err)
		}
		if other, ok := seen[abs]; ok {
			return herrors.ValidationError(fmt.Sprintf("%s and %s directories are the same: %s", other, r.name, abs), nil)
		}
		seen[abs] = r.name
	}
	return nil
}

// Ensure creates every root and subdirectory.
func (l Layout) Ensure() error {
	for _, v := range record.Variants() {
		for _, k := range []Kind{KindRadical, KindCharacter} {
			dir := l.Dir(v, k)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return herrors.IOError("create document directory", err).WithDetail("path", dir)
			}
		}
	}
	return nil
}
