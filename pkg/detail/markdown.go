package detail

import (
	"fmt"
	"strings"

	"github.com/matzehuels/libpanel/pkg/library"
)

// Markdown returns the panel body: the library name as a heading, its
// description, and an image gallery when the library has images.
func Markdown(lib *library.Library) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n", lib.GitHub.Name, lib.GitHub.Description)
	if len(lib.Images) > 0 {
		sb.WriteString("\n### Images\n")
		for _, img := range lib.Images {
			fmt.Fprintf(&sb, "![Image](%s)\n", img)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Panel is everything a host needs to render a library: the markdown body
// and the metadata tree.
type Panel struct {
	Markdown string   `json:"markdown"`
	Metadata Metadata `json:"metadata"`
}

// NewPanel builds the panel of lib.
func NewPanel(lib *library.Library, authorName string, opts Options) Panel {
	return Panel{
		Markdown: Markdown(lib),
		Metadata: Build(lib, authorName, opts),
	}
}
