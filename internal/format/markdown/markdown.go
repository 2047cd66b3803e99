// Package markdown renders assistant replies for the terminal.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/atomicstack/inboxai-popup/internal/logging"
)

// Renderer caches one glamour renderer per style and width.
type Renderer struct {
	mu    sync.Mutex
	cache map[key]*glamour.TermRenderer
}

type key struct {
	style string
	width int
}

func New() *Renderer {
	return &Renderer{cache: make(map[key]*glamour.TermRenderer)}
}

// Render formats text with the "dark" or "light" glamour style, wrapped at
// width. On any renderer failure the trimmed input is returned unchanged.
func (r *Renderer) Render(text, style string, width int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	tr, err := r.renderer(style, width)
	if err != nil {
		logging.Error(err)
		return text
	}
	out, err := tr.Render(text)
	if err != nil {
		logging.Error(err)
		return text
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) renderer(style string, width int) (*glamour.TermRenderer, error) {
	if style != "light" {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	k := key{style: style, width: width}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.cache[k]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.cache[k] = tr
	return tr, nil
}
