// Package render produces derived artifacts from the knowledge base: an Anki
// flashcard table and a printable stroke-practice sheet.
package render

import (
	"github.com/Aman-CERP/hanzi/internal/model"
)

// Source is the read-only view of a store that renderers need.
type Source interface {
	Characters() []model.Character
	Radicals() []model.Radical
}
