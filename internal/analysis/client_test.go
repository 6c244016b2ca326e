package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbaille/lifestore/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func testRequest() domain.AnalyzeRequest {
	return domain.AnalyzeRequest{Year: 1998, Month: 5, Day: 5, Gender: domain.GenderMale, MBTI: "ENTP"}
}

func TestAnalyze_Success(t *testing.T) {
	var got domain.AnalyzeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user_info": {"year": 1998, "month": 5, "day": 5, "hour": 0, "minute": 0, "gender": "male", "mbti": "ENTP"},
			"saju_analysis": {"day_master": "甲", "main_trait": "Wood", "hour_pillar": null,
				"five_elements": {"Wood": 3, "Fire": 1, "Earth": 2, "Metal": 1, "Water": 1}},
			"theme_data": {"wanted": {"crimes": ["a", "b"], "bounty": 1000}},
			"rank": {"grade": "S", "title": "Legend", "title_korean": "전설", "color": "#FFD700"}
		}`))
	})

	resp, err := c.Analyze(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, testRequest(), got)
	assert.Equal(t, "ENTP", resp.UserInfo.MBTI)
	assert.Nil(t, resp.SajuAnalysis.HourPillar)
	assert.Equal(t, 3.0, resp.SajuAnalysis.FiveElements.Wood)
	require.NotNil(t, resp.ThemeData.Wanted)
	assert.Equal(t, []string{"a", "b"}, resp.ThemeData.Wanted.Crimes)
	assert.Equal(t, int64(1000), *resp.ThemeData.Wanted.Bounty)
	assert.Nil(t, resp.ThemeData.Receipt)
	assert.Equal(t, "S", resp.Rank.Grade)
}

func TestAnalyze_ServerErrorDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{ "detail": "server error" }`))
	})

	_, err := c.Analyze(context.Background(), testRequest())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "server error", reqErr.Message)
}

func TestAnalyze_ErrorWithoutDetail(t *testing.T) {
	bodies := []string{``, `not json`, `{}`, `{"detail": [{"msg": "bad"}]}`}
	for _, body := range bodies {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(body))
		})

		_, err := c.Analyze(context.Background(), testRequest())
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr, body)
		assert.Equal(t, GenericFailure, reqErr.Message, body)
	}
}

func TestAnalyze_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).Analyze(context.Background(), testRequest())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.Status)
	assert.Equal(t, ConnectionFailure, reqErr.Message)
	assert.NotNil(t, errors.Unwrap(reqErr))
}

func TestAnalyze_UndecodableSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})

	_, err := c.Analyze(context.Background(), testRequest())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, GenericFailure, reqErr.Message)
}
