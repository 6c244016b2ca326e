package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/synth"
)

// ArtifactSelector locates the exportable subtree in every rendered document
const ArtifactSelector = "#artifact"

//go:embed templates/*.html
var templatesFS embed.FS

// Props is the data contract shared by all renderers.
// Data must already be complete; renderers never synthesize.
type Props struct {
	Theme      domain.ThemeID
	User       domain.UserInfo
	Analysis   domain.SajuAnalysis
	Data       *domain.ThemeData
	Rank       *domain.RankInfo
	Background string
	Now        time.Time
}

// Age returns the age in the current year
func (p Props) Age() int {
	return p.now().Year() - p.User.Year
}

// Today returns the render date as YYYY.MM.DD
func (p Props) Today() string {
	return p.now().Format("2006.01.02")
}

func (p Props) now() time.Time {
	if p.Now.IsZero() {
		return time.Now()
	}
	return p.Now
}

type templateRenderer struct {
	tmpl *template.Template
}

func newTemplateRenderer(id domain.ThemeID) *templateRenderer {
	base := template.Must(template.New("base.html").Funcs(funcs).ParseFS(templatesFS, "templates/base.html"))
	t := template.Must(template.Must(base.Clone()).ParseFS(templatesFS, "templates/"+string(id)+".html"))
	return &templateRenderer{tmpl: t}
}

func (r *templateRenderer) Render(w io.Writer, p Props) error {
	if p.Data == nil {
		return fmt.Errorf("render %s: theme data not resolved", p.Theme)
	}
	if err := r.tmpl.ExecuteTemplate(w, "base.html", p); err != nil {
		return fmt.Errorf("render %s: %w", p.Theme, err)
	}
	return nil
}

var funcs = template.FuncMap{
	"won":     formatWon,
	"dollars": formatDollars,
	"pad2":    func(n int) string { return fmt.Sprintf("%02d", n) },
	"int":     derefInt,
	"int64":   derefInt64,
	"str":     derefString,
	"stars":   stars,
	"add":     func(a, b int) int { return a + b },
	"mul":     func(a, b int) int { return a * b },
	"element": synth.ElementKorean,
	"join":    strings.Join,
	"at": func(s []string, i int) string {
		if i < 0 || i >= len(s) {
			return ""
		}
		return s[i]
	},
	"chartLine": chartLine,
	"gender": func(g domain.Gender, male, female string) string {
		if g == domain.GenderMale {
			return male
		}
		return female
	},
	"pillar": func(p *domain.Pillar) string {
		if p == nil {
			return "??"
		}
		return p.Stem + p.Branch
	},
	"pillarKorean": func(p *domain.Pillar) string {
		if p == nil {
			return "--"
		}
		return p.StemKorean + p.BranchKorean
	},
}

// formatWon renders a price like ₩12,000 or -₩3,000
func formatWon(price int) string {
	if price < 0 {
		return "-₩" + commas(int64(-price))
	}
	return "₩" + commas(int64(price))
}

func formatDollars(v int64) string {
	return "$" + commas(v)
}

func commas(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// chartLine plots one series of the chart as SVG polyline points
func chartLine(data []domain.ChartPoint, series string) string {
	const width, height, pad = 340, 200, 20
	if len(data) == 0 {
		return ""
	}
	step := 0
	if len(data) > 1 {
		step = (width - 2*pad) / (len(data) - 1)
	}
	points := make([]string, len(data))
	for i, p := range data {
		v := p.Wealth
		if series == "love" {
			v = p.Love
		}
		y := height - pad - v*(height-2*pad)/100
		points[i] = fmt.Sprintf("%d,%d", pad+i*step, y)
	}
	return strings.Join(points, " ")
}

// stars renders n filled of total stars
func stars(n, total int) string {
	n = min(max(n, 0), total)
	return strings.Repeat("★", n) + strings.Repeat("☆", total-n)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
