// Package theme holds the static theme table and the artifact renderers.
package theme

import (
	"fmt"
	"io"

	"github.com/pbaille/lifestore/internal/domain"
)

// Renderer turns one analysis result into an artifact document
type Renderer interface {
	Render(w io.Writer, p Props) error
}

// Config is the display configuration of a theme
type Config struct {
	Label          string `json:"label"`
	Background     string `json:"background"`
	ExportFileName string `json:"export_file_name"`
}

// Entry is one row of the registry
type Entry struct {
	ID       domain.ThemeID
	Config   Config
	Renderer Renderer
}

// Registry maps theme ids to renderers and configuration.
// It is built once and never mutated.
type Registry struct {
	order   []domain.ThemeID
	entries map[domain.ThemeID]Entry
}

// NewRegistry builds a registry from entries, keeping their order
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[domain.ThemeID]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := r.entries[e.ID]; dup {
			panic(fmt.Sprintf("theme: duplicate entry %q", e.ID))
		}
		r.order = append(r.order, e.ID)
		r.entries[e.ID] = e
	}
	return r
}

// Default returns the registry of the eight built-in themes
func Default() *Registry {
	configs := map[domain.ThemeID]Config{
		domain.ThemeReceipt:  {Label: "인생 영수증", Background: "#e5e5e5", ExportFileName: "life-receipt.png"},
		domain.ThemeWanted:   {Label: "현상수배", Background: "#3b2a1a", ExportFileName: "wanted-poster.png"},
		domain.ThemeHospital: {Label: "진단서", Background: "#f1f5f9", ExportFileName: "diagnosis-report.png"},
		domain.ThemePastLife: {Label: "전생 기록", Background: "#1e1b4b", ExportFileName: "pastlife-record.png"},
		domain.ThemeLove:     {Label: "연애 시뮬", Background: "#fdf2f8", ExportFileName: "love-status.png"},
		domain.ThemeMeme:     {Label: "짤방", Background: "#18181b", ExportFileName: "my-life-meme.png"},
		domain.ThemeChart:    {Label: "인생 차트", Background: "#0f172a", ExportFileName: "life-chart.png"},
		domain.ThemeScandal:  {Label: "열애설", Background: "#f5f5f5", ExportFileName: "scandal-news.png"},
	}

	entries := make([]Entry, 0, len(domain.Themes))
	for _, id := range domain.Themes {
		entries = append(entries, Entry{
			ID:       id,
			Config:   configs[id],
			Renderer: newTemplateRenderer(id),
		})
	}
	return NewRegistry(entries...)
}

// List returns theme ids in tab order
func (r *Registry) List() []domain.ThemeID {
	return append([]domain.ThemeID(nil), r.order...)
}

// Lookup finds an entry; use it for ids that come from outside the program
func (r *Registry) Lookup(id domain.ThemeID) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Config returns the configuration of id. An unknown id is a programming error.
func (r *Registry) Config(id domain.ThemeID) Config {
	return r.mustEntry(id).Config
}

// Render delegates to the renderer of id. An unknown id is a programming error.
func (r *Registry) Render(w io.Writer, id domain.ThemeID, p Props) error {
	e := r.mustEntry(id)
	if p.Background == "" {
		p.Background = e.Config.Background
	}
	p.Theme = id
	return e.Renderer.Render(w, p)
}

func (r *Registry) mustEntry(id domain.ThemeID) Entry {
	e, ok := r.entries[id]
	if !ok {
		panic(fmt.Sprintf("theme: unknown theme %q", id))
	}
	return e
}
