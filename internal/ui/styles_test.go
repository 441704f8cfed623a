package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoColorStyles_RenderUnchanged(t *testing.T) {
	// Given: plain styles
	styles := NoColorStyles()

	// Then: single-line text passes through untouched
	assert.Equal(t, "木", styles.Glyph.Render("木"))
	assert.Equal(t, "mù", styles.Pinyin.Render("mù"))
	assert.Equal(t, "Label", styles.Label.Render("Label"))
}

func TestDefaultStyles_HeaderIsBold(t *testing.T) {
	styles := DefaultStyles()
	assert.True(t, styles.Header.GetBold())
	assert.True(t, styles.Glyph.GetBold())
}

func TestGetStyles(t *testing.T) {
	assert.False(t, GetStyles(true).Header.GetBold())
	assert.True(t, GetStyles(false).Header.GetBold())
}
