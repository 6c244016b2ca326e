package theme

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/synth"
)

func testProps(t *testing.T) Props {
	t.Helper()
	in := synth.Input{
		User: domain.UserInfo{Year: 1998, Month: 5, Day: 5, Gender: domain.GenderFemale, MBTI: "INFP"},
		Analysis: domain.SajuAnalysis{
			DayPillar:           domain.Pillar{Stem: "甲", Branch: "子", StemKorean: "갑", BranchKorean: "자"},
			DayMaster:           "甲",
			DayMasterKorean:     "갑목",
			MainTrait:           "Water",
			MainTraitKorean:     "수(水)",
			FiveElements:        domain.FiveElements{Wood: 2, Fire: 1, Earth: 1, Metal: 1, Water: 3},
			LackingTraitsKorean: []string{"화(火)"},
		},
		Supplied: &domain.ThemeData{Wanted: &domain.WantedTheme{Crimes: []string{"과몰입 상습범"}}},
	}
	return Props{
		User:     in.User,
		Analysis: in.Analysis,
		Data:     synth.New(nil).Complete(in),
		Now:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDefault_OrderAndConfig(t *testing.T) {
	r := Default()
	require.Equal(t, domain.Themes, r.List())

	assert.Equal(t, "life-receipt.png", r.Config(domain.ThemeReceipt).ExportFileName)
	assert.Equal(t, "wanted-poster.png", r.Config(domain.ThemeWanted).ExportFileName)
	assert.Equal(t, "scandal-news.png", r.Config(domain.ThemeScandal).ExportFileName)

	for _, id := range r.List() {
		cfg := r.Config(id)
		assert.NotEmpty(t, cfg.Label, id)
		assert.True(t, strings.HasPrefix(cfg.Background, "#"), id)
		assert.True(t, strings.HasSuffix(cfg.ExportFileName, ".png"), id)
	}
}

func TestRegistry_UnknownTheme(t *testing.T) {
	r := Default()

	_, ok := r.Lookup("joseon")
	assert.False(t, ok)
	assert.Panics(t, func() { r.Config("joseon") })
	assert.Panics(t, func() { _ = r.Render(&bytes.Buffer{}, "joseon", Props{}) })
}

func TestNewRegistry_DuplicatePanics(t *testing.T) {
	e := Entry{ID: domain.ThemeMeme}
	assert.Panics(t, func() { NewRegistry(e, e) })
}

func TestRender_EveryTheme(t *testing.T) {
	r := Default()
	p := testProps(t)
	p.Rank = &domain.RankInfo{Grade: "SSR", TitleKorean: "전설의 존재", Color: "#FFD700"}

	for _, id := range r.List() {
		t.Run(string(id), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, id, p))

			html := buf.String()
			assert.Contains(t, html, `id="artifact"`)
			assert.Contains(t, html, r.Config(id).Background)
			assert.Contains(t, html, "전설의 존재")
		})
	}
}

func TestRender_SuppliedFieldsAppear(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Render(&buf, domain.ThemeWanted, testProps(t)))
	assert.Contains(t, buf.String(), "과몰입 상습범")
}

func TestRender_MemeImagePath(t *testing.T) {
	p := testProps(t)
	var buf bytes.Buffer
	require.NoError(t, Default().Render(&buf, domain.ThemeMeme, p))
	assert.Contains(t, buf.String(), `src="/memes/`+p.Data.Meme.Image+`"`)
}

func TestRender_NilDataFails(t *testing.T) {
	var buf bytes.Buffer
	err := Default().Render(&buf, domain.ThemeReceipt, Props{})
	require.Error(t, err)
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "₩0", formatWon(0))
	assert.Equal(t, "₩12,000", formatWon(12000))
	assert.Equal(t, "-₩3,000", formatWon(-3000))
	assert.Equal(t, "$1,234,567", formatDollars(1234567))
	assert.Equal(t, "★★★☆☆", stars(3, 5))
	assert.Equal(t, "★★★★★", stars(9, 5))
	assert.Equal(t, "20,180 320,20", chartLine([]domain.ChartPoint{{Wealth: 0}, {Wealth: 100}}, "wealth"))
}

func TestProps_AgeAndToday(t *testing.T) {
	p := Props{User: domain.UserInfo{Year: 2000}, Now: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 26, p.Age())
	assert.Equal(t, "2026.01.02", p.Today())
}
