package promesso

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseSend(t *testing.T) {
	testCases := []struct {
		name        string
		body        any
		contentType string
		expected    string
	}{
		{"string", "hi", "text/plain; charset=utf-8", "hi"},
		{"bytes", []byte{1, 2}, "application/octet-stream", "\x01\x02"},
		{"raw json", json.RawMessage(`{"a":1}`), "application/json", `{"a":1}`},
		{"slice", []int{1, 2}, "application/json", `[1,2]`},
		{"nil", nil, "", ""},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := WrapResponse(rec)
			assert.NoError(t, w.Status(http.StatusAccepted).Send(test.body))
			assert.Equal(t, http.StatusAccepted, rec.Code)
			assert.Equal(t, test.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, test.expected, rec.Body.String())
			assert.Equal(t, len(test.expected), w.Size)
			assert.Equal(t, http.StatusAccepted, w.Code)
		})
	}
}

func TestResponseSendKeepsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	w := WrapResponse(rec)
	w.Header().Set("Content-Type", "text/html")
	w.Send("<b>hi</b>")
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResponseSendUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WrapResponse(rec).Send(func() {})
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResponseSendStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := WrapResponse(rec)
	assert.False(t, w.Written())
	w.SendStatus(http.StatusInternalServerError)
	assert.True(t, w.Written())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())

	// The first status wins.
	w.WriteHeader(http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWrapResponseIsIdempotent(t *testing.T) {
	w := WrapResponse(httptest.NewRecorder())
	assert.Same(t, w, WrapResponse(w))
	assert.NotNil(t, w.Unwrap())
}
