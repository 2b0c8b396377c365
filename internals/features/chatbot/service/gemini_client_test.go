package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvdigital_backend/internals/helpers/breaker"
)

func newGemini(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient("kunci-test", "gemini-test", srv.URL+"/")
}

func TestAsk_SendsPromptAndReturnsFirstCandidate(t *testing.T) {
	var gotPath, gotKey, gotQuery string
	var gotBody generateRequest
	c := newGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"MUX 1 ada "},{"text":"di UHF 28."}]}},{"content":{"parts":[{"text":"lain"}]}}]}`))
	})

	reply, err := c.Ask(context.Background(), "  MUX apa saja di Bandung?  ")
	require.NoError(t, err)
	assert.Equal(t, "MUX 1 ada di UHF 28.", reply)

	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "kunci-test", gotKey)
	assert.NotContains(t, gotQuery, "kunci-test")
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "MUX apa saja di Bandung?", gotBody.Contents[0].Parts[0].Text)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Contains(t, gotBody.SystemInstruction.Parts[0].Text, "TV digital")
}

func TestAsk_Validation(t *testing.T) {
	called := false
	c := newGemini(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := c.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = c.Ask(context.Background(), strings.Repeat("a", MaxPromptRunes+1))
	assert.ErrorIs(t, err, ErrPromptTooLong)
	assert.False(t, called)
}

func TestAsk_NotConfigured(t *testing.T) {
	c := NewClient("", "gemini-test", "http://127.0.0.1:1")
	_, err := c.Ask(context.Background(), "halo")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAsk_UpstreamErrors(t *testing.T) {
	c := newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})
	_, err := c.Ask(context.Background(), "halo")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadRequest, ue.Status)
	assert.Equal(t, "API key not valid", ue.Message)

	c = newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	})
	_, err = c.Ask(context.Background(), "halo")
	assert.ErrorIs(t, err, ErrAnswerBlocked)

	c = newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	_, err = c.Ask(context.Background(), "halo")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestAsk_ClientErrorsDoNotOpenBreaker(t *testing.T) {
	hits := 0
	c := newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadRequest)
	})
	for i := 0; i < 8; i++ {
		_, err := c.Ask(context.Background(), "halo")
		assert.False(t, breaker.IsOpen(err))
	}
	assert.Equal(t, 8, hits)
}

func TestAsk_ServerErrorsOpenBreaker(t *testing.T) {
	hits := 0
	c := newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	})
	var err error
	for i := 0; i < 7; i++ {
		_, err = c.Ask(context.Background(), "halo")
	}
	assert.True(t, breaker.IsOpen(err))
	assert.Equal(t, 5, hits)
}

func TestAsk_OwnTimeoutIgnoresCallerDeadline(t *testing.T) {
	c := newGemini(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	reply, err := c.Ask(ctx, "halo")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	c.Timeout = 10 * time.Millisecond
	_, err = c.Ask(context.Background(), "halo")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCountsAsSuccess(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{fmt.Errorf("gemini: %w", context.Canceled), true},
		{&UpstreamError{Status: http.StatusBadRequest}, true},
		{&UpstreamError{Status: http.StatusTooManyRequests}, false},
		{&UpstreamError{Status: http.StatusServiceUnavailable}, false},
		{fmt.Errorf("gemini: %w", context.DeadlineExceeded), false},
		{ErrAnswerBlocked, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, countsAsSuccess(tc.err), "%v", tc.err)
	}
}
