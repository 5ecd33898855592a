package transport_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/UnknownOlympus/hydrosite/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

// errReader fails every read.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, assert.AnError }

func TestFetcher_GetJSON(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	noLimit := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful request", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "example.org", req.URL.Host)
				assert.Equal(t, "-111.21", req.URL.Query().Get("x"))
				assert.Equal(t, "keep", req.URL.Query().Get("existing"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))
				assert.Equal(t, transport.DefaultUserAgent, req.Header.Get("User-Agent"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"ok":true}`)),
				}, nil
			},
		}

		fetcher := transport.NewFetcherWithClient(mockClient, noLimit, logger)
		body, err := fetcher.GetJSON(ctx, "https://example.org/query?existing=keep", url.Values{"x": {"-111.21"}})

		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
	})

	t.Run("client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		fetcher := transport.NewFetcherWithClient(mockClient, noLimit, logger)
		body, err := fetcher.GetJSON(ctx, "https://example.org", nil)

		require.Nil(t, body)
		require.ErrorIs(t, err, transport.ErrTransport)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("non-200 status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(bytes.NewBufferString(`down`)),
				}, nil
			},
		}

		fetcher := transport.NewFetcherWithClient(mockClient, noLimit, logger)
		_, err := fetcher.GetJSON(ctx, "https://example.org", nil)

		var statusErr *transport.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
		assert.Equal(t, "down", statusErr.Body)
		assert.True(t, statusErr.Transient())
		assert.Contains(t, err.Error(), "service returned status 503")
	})

	t.Run("body read fails", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(errReader{})}, nil
			},
		}

		fetcher := transport.NewFetcherWithClient(mockClient, noLimit, logger)
		_, err := fetcher.GetJSON(ctx, "https://example.org", nil)

		require.ErrorIs(t, err, transport.ErrTransport)
		assert.Contains(t, err.Error(), "failed to read response body")
	})

	t.Run("invalid base URL", func(t *testing.T) {
		fetcher := transport.NewFetcherWithClient(&mockHTTPClient{}, noLimit, logger)
		_, err := fetcher.GetJSON(ctx, "://bad", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse base URL")
	})

	t.Run("rate limit wait aborted", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(context.Background())
		cancel()
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return &http.Response{}, nil
			},
		}

		fetcher := transport.NewFetcherWithClient(mockClient, rate.NewLimiter(rate.Every(time.Second), 1), logger)
		_, err := fetcher.GetJSON(rateCtx, "https://example.org", nil)

		require.ErrorIs(t, err, transport.ErrRateLimited)
	})
}

func TestStatusError_Transient(t *testing.T) {
	assert.True(t, (&transport.StatusError{Code: http.StatusTooManyRequests}).Transient())
	assert.True(t, (&transport.StatusError{Code: http.StatusGatewayTimeout}).Transient())
	assert.False(t, (&transport.StatusError{Code: http.StatusBadRequest}).Transient())
	assert.False(t, errors.Is(&transport.StatusError{Code: 500}, transport.ErrTransport))
}

func TestNewFetcher(t *testing.T) {
	require.NotNil(t, transport.NewFetcher(0, slog.Default()))
}
