package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/libpanel/pkg/detail"
)

const panelTitleWidth = 20

var (
	panelTitleStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(panelTitleWidth)
	panelHeadingStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	panelSelectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	panelRuleStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// renderMarkdown renders the panel body. Only the constructs produced by
// detail.Markdown are styled; other lines pass through.
func renderMarkdown(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "# "):
			lines[i] = StyleTitle.Render(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "### "):
			lines[i] = panelHeadingStyle.Render(strings.TrimPrefix(line, "### "))
		case strings.HasPrefix(line, "![") && strings.HasSuffix(line, ")"):
			if open := strings.Index(line, "]("); open >= 0 {
				lines[i] = "  " + StyleLink.Render(line[open+2:len(line)-1])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderMetadata renders the metadata tree, one row per line. sel is the
// highlighted target, or nil.
func renderMetadata(md detail.Metadata, sel *detail.Target, width int) string {
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	for i, row := range md.Rows {
		if row.Kind == detail.KindSeparator {
			b.WriteString(panelRuleStyle.Render(strings.Repeat("─", width)))
			b.WriteString("\n")
			continue
		}
		b.WriteString(panelTitleStyle.Render(row.Title))
		b.WriteString(renderRowValue(i, row, sel))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRowValue(index int, row detail.Row, sel *detail.Target) string {
	selected := func(tag int) bool {
		return sel != nil && sel.Row == index && sel.Tag == tag
	}
	switch row.Kind {
	case detail.KindLabel:
		text := row.Text
		if text == "" {
			text = iconSuccess
		}
		return withIcon(row.Icon, StyleValue.Render(text))
	case detail.KindLink:
		link := StyleLink.Render(row.Text)
		if selected(-1) {
			link = panelSelectedStyle.Render(row.Text)
		}
		return link
	case detail.KindTagList:
		parts := make([]string, 0, len(row.Tags))
		for j, tag := range row.Tags {
			parts = append(parts, renderTag(tag, selected(j)))
		}
		return strings.Join(parts, "  ")
	}
	return ""
}

func renderTag(tag detail.Tag, selected bool) string {
	style := lipgloss.NewStyle().Foreground(colorWhite)
	if c, ok := tagColors[tag.Color]; ok {
		style = style.Foreground(c)
	}
	if tag.Action != nil {
		style = style.Underline(true)
	}
	if selected {
		style = panelSelectedStyle.Foreground(style.GetForeground())
	}
	return withIcon(tag.Icon, style.Render(tag.Text))
}

func withIcon(icon detail.Icon, s string) string {
	glyph, ok := panelIcons[icon]
	if !ok {
		return s
	}
	return StyleDim.Render(glyph) + " " + s
}

// renderPanel renders the whole panel: body, a blank line, metadata.
func renderPanel(p detail.Panel, sel *detail.Target, width int) string {
	return renderMarkdown(p.Markdown) + "\n\n" + renderMetadata(p.Metadata, sel, width)
}
