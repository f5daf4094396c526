package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabchat/internal/common"
)

func TestStatusError_Taxonomy(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		check func(t *testing.T, err error)
	}{
		{"success", http.StatusOK, func(t *testing.T, err error) {
			assert.NoError(t, err)
		}},
		{"created", http.StatusCreated, func(t *testing.T, err error) {
			assert.NoError(t, err)
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			assert.True(t, common.IsAuth(err))
		}},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) {
			assert.True(t, common.IsAuth(err))
		}},
		{"bad request", http.StatusBadRequest, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, common.ErrEmptyContent)
		}},
		{"payload too large", http.StatusRequestEntityTooLarge, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, common.ErrPayloadTooLarge)
		}},
		{"unsupported media type", http.StatusUnsupportedMediaType, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, common.ErrUnsupportedType)
		}},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) {
			assert.True(t, common.IsNetwork(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, statusError("send", tt.code))
		})
	}
}

func TestHTTPDurable_UploadMapsRejections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	d := NewHTTPDurable(srv.URL, "token")
	_, err := d.Upload(context.Background(), "C1", "huge.png", strings.NewReader("..."))
	assert.ErrorIs(t, err, common.ErrPayloadTooLarge)
}

func TestHTTPDurable_ConnectionRefusedIsNetworkError(t *testing.T) {
	// A port from the dynamic range with nothing listening.
	d := NewHTTPDurable("http://127.0.0.1:1", "token")
	_, err := d.FetchHistory(context.Background(), "C1")
	require.Error(t, err)
	assert.True(t, common.IsNetwork(err))

	var ne *common.NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, "fetch_history", ne.Op)
}

func TestHTTPDurable_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	d := NewHTTPDurable(srv.URL, "session-token")
	_, err := d.FetchHistory(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer session-token", gotAuth)
}
