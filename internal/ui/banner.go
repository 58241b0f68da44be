// Package ui renders the shell's cosmetic, non-scripted-output chrome: the
// --version banner and readline's interrupt/EOF prompts. It never touches
// the REPL prompt or any command's own stdout/stderr, whose bytes other
// tools and tests depend on staying exact.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/quietloop/posh/internal/buildinfo"
	"github.com/quietloop/posh/internal/config"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Chrome renders transient shell chrome — readline's interrupt/EOF
// prompts, the version banner's accents — styled when style is
// config.StyleColor, and as s's literal bytes otherwise.
func Chrome(style config.PromptStyle, s string) string {
	if style != config.StyleColor {
		return s
	}
	return versionStyle.Render(s)
}

// VersionBanner renders the --version output. style gates the lipgloss
// styling; config.StylePlain (the default) renders identical bytes with no
// ANSI escapes at all.
func VersionBanner(style config.PromptStyle) string {
	if style != config.StyleColor {
		return "posh " + buildinfo.String()
	}
	return nameStyle.Render("posh") + " " + versionStyle.Render(buildinfo.String())
}
