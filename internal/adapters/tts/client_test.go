package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_Success(t *testing.T) {
	var gotReq synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/synthesize", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "vi-VN-HoaiMyNeural", 5*time.Second)

	audio, contentType, err := client.Synthesize(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "audio/mpeg", contentType)
	assert.Equal(t, "hello", gotReq.Text)
	assert.Equal(t, "vi-VN-HoaiMyNeural", gotReq.Voice, "empty voice falls back to the default")
}

func TestSynthesize_ExplicitVoice(t *testing.T) {
	var gotReq synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "default-voice", 5*time.Second)

	_, contentType, err := client.Synthesize(context.Background(), "hi", "en-US-AriaNeural")
	require.NoError(t, err)
	assert.Equal(t, "en-US-AriaNeural", gotReq.Voice)
	assert.Equal(t, "audio/mpeg", contentType, "missing content type defaults to audio/mpeg")
}

func TestSynthesize_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	_, _, err := client.Synthesize(context.Background(), "hello", "")
	assert.ErrorContains(t, err, "status 502")
}

func TestSynthesize_NotConfigured(t *testing.T) {
	client := NewClient("", "", 5*time.Second)

	_, _, err := client.Synthesize(context.Background(), "hello", "")
	assert.ErrorContains(t, err, "not configured")
}
