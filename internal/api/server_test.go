package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/analysis"
	"github.com/pbaille/lifestore/internal/app"
	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/export"
	"github.com/pbaille/lifestore/internal/history"
	"github.com/pbaille/lifestore/internal/synth"
	"github.com/pbaille/lifestore/internal/theme"
)

type stubAnalyzer struct {
	resp *domain.AnalyzeResponse
	err  error
}

func (s stubAnalyzer) Analyze(ctx context.Context, req domain.AnalyzeRequest) (*domain.AnalyzeResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.UserInfo.MBTI = req.MBTI
	return &resp, nil
}

type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) { v, ok := m[key]; return v, ok, nil }
func (m memKV) Put(key, value string) error          { m[key] = value; return nil }

type pngCapturer struct{}

func (pngCapturer) Capture(ctx context.Context, doc []byte, opts export.CaptureOptions) ([]byte, error) {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	return buf.Bytes(), nil
}

func newTestServer(t *testing.T, analyzer analysis.Analyzer) *httptest.Server {
	t.Helper()

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "this_is_fine.jpg"), []byte("jpeg"), 0644))

	registry := theme.Default()
	ctrl, err := app.New(app.Deps{
		Analyzer: analyzer,
		Synth:    synth.New(nil),
		Registry: registry,
		History:  history.New(memKV{}, nil),
		Exporter: export.New(pngCapturer{}, export.Options{AssetsDir: assets}, nil),
	}, app.Options{Now: tick()})
	require.NoError(t, err)

	srv := httptest.NewServer(New(ctrl, registry, assets, "", zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// tick is a clock advancing one second per call
func tick() func() time.Time {
	now := time.UnixMilli(1_700_000_000_000)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func okAnalyzer() stubAnalyzer {
	return stubAnalyzer{resp: &domain.AnalyzeResponse{
		UserInfo: domain.UserInfo{Year: 1998, Month: 5, Day: 5, Gender: domain.GenderMale},
		SajuAnalysis: domain.SajuAnalysis{
			DayPillar:       domain.Pillar{Stem: "甲", Branch: "子"},
			DayMaster:       "甲",
			DayMasterKorean: "갑목",
			MainTrait:       "Wood",
			MainTraitKorean: "목(木)",
			FiveElements:    domain.FiveElements{Wood: 3, Fire: 1, Earth: 1, Metal: 1, Water: 2},
		},
	}}
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())
	resp := do(t, "GET", srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestThemes(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())

	resp := do(t, "GET", srv.URL+"/themes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Themes []ThemeInfo    `json:"themes"`
		Active domain.ThemeID `json:"active"`
	}](t, resp)
	require.Len(t, body.Themes, len(domain.Themes))
	assert.Equal(t, domain.ThemeReceipt, body.Themes[0].ID)
	assert.Equal(t, "life-receipt.png", body.Themes[0].ExportFileName)
	assert.Equal(t, domain.ThemeReceipt, body.Active)
}

func TestAnalyzeFlow(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())

	resp := do(t, "GET", srv.URL+"/artifact", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, "PUT", srv.URL+"/theme/meme", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/analyze", `{"birthDate":"1998-05-05","gender":"male","mbti":"ENTP"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[app.Snapshot](t, resp)
	assert.Equal(t, app.PhaseReady, snap.Phase)
	require.NotNil(t, snap.Result)
	require.NotNil(t, snap.Result.ThemeData.Meme)

	resp = do(t, "PUT", srv.URL+"/theme/meme", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "GET", srv.URL+"/artifact", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = do(t, "GET", srv.URL+"/memes/this_is_fine.jpg", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="my-life-meme.png"`)

	resp = do(t, "POST", srv.URL+"/analyze", `{"birthDate":"1998-05-05"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, "POST", srv.URL+"/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, app.PhaseIdle, decode[app.Snapshot](t, resp).Phase)
}

func TestAnalyze_Validation(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())

	resp := do(t, "POST", srv.URL+"/analyze", `{"birthDate":"","mbti":"ENTP"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "생년월일을 입력해주세요.", decode[map[string]string](t, resp)["error"])

	resp = do(t, "POST", srv.URL+"/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyze_UpstreamError(t *testing.T) {
	srv := newTestServer(t, stubAnalyzer{err: &analysis.RequestError{Status: 500, Message: "server error"}})

	resp := do(t, "POST", srv.URL+"/analyze", `{"birthDate":"19980505","mbti":"ENTP"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "server error", decode[map[string]string](t, resp)["error"])

	resp = do(t, "GET", srv.URL+"/state", "")
	snap := decode[app.Snapshot](t, resp)
	assert.Equal(t, app.PhaseIdle, snap.Phase)
	assert.Equal(t, "server error", snap.Error)
}

func TestAnalyze_DefaultsMBTI(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())

	resp := do(t, "POST", srv.URL+"/analyze", `{"birthDate":"19980505"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "GET", srv.URL+"/history", "")
	got := decode[struct {
		History []domain.HistoryEntry `json:"history"`
	}](t, resp)
	require.Len(t, got.History, 1)
	assert.Equal(t, "ENTP", got.History[0].MBTI)
}

func TestSelectTheme_Unknown(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())
	resp := do(t, "PUT", srv.URL+"/theme/joseon", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHistory(t *testing.T) {
	srv := newTestServer(t, okAnalyzer())

	do(t, "POST", srv.URL+"/analyze", `{"birthDate":"19980505","mbti":"ENTP"}`)
	do(t, "POST", srv.URL+"/reset", "")
	do(t, "POST", srv.URL+"/analyze", `{"birthDate":"19990101","mbti":"INFP"}`)

	type historyBody struct {
		History []domain.HistoryEntry `json:"history"`
	}
	resp := do(t, "GET", srv.URL+"/history", "")
	got := decode[historyBody](t, resp)
	require.Len(t, got.History, 2)
	assert.Equal(t, "1999.01.01", got.History[0].BirthDate)

	resp = do(t, "DELETE", srv.URL+"/history/"+strconv.FormatInt(got.History[0].Timestamp, 10), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	remaining := decode[historyBody](t, resp)
	require.Len(t, remaining.History, 1)
	assert.Equal(t, "1998.05.05", remaining.History[0].BirthDate)

	resp = do(t, "DELETE", srv.URL+"/history/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
