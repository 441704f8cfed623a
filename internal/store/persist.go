package store

import (
	"os"
	"path/filepath"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/record"
)

// persist writes each document to its variant root. Writes are not
// transactional: a failure part way leaves earlier variants on disk.
func (s *Store) persist(kind Kind, key string, docs []record.Document) error {
	for _, doc := range docs {
		path := s.layout.Path(doc.Variant, kind, key)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return herrors.IOError("create document directory", err).
				WithDetail("path", filepath.Dir(path))
		}
		if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
			return herrors.IOError("write "+doc.Variant.String()+" document", err).
				WithDetail("path", path)
		}
	}
	return nil
}
