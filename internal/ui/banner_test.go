package ui_test

import (
	"testing"

	"github.com/quietloop/posh/internal/config"
	"github.com/quietloop/posh/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestChrome_PlainIsLiteral(t *testing.T) {
	assert.Equal(t, "^C", ui.Chrome(config.StylePlain, "^C"))
}

func TestChrome_ColorStillContainsText(t *testing.T) {
	// lipgloss degrades to plain text outside a real terminal (as in this
	// test process), so this only pins the text surviving styling, not
	// the presence of escape codes.
	styled := ui.Chrome(config.StyleColor, "^C")
	assert.Contains(t, styled, "^C")
}

func TestVersionBanner_PlainHasNoEscapes(t *testing.T) {
	banner := ui.VersionBanner(config.StylePlain)
	assert.Contains(t, banner, "posh")
	assert.NotContains(t, banner, "\x1b")
}

func TestVersionBanner_ColorStillContainsName(t *testing.T) {
	banner := ui.VersionBanner(config.StyleColor)
	assert.Contains(t, banner, "posh")
}
