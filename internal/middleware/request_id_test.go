package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	return rec, seen
}

func TestRequestID(t *testing.T) {
	t.Run("keeps a client uuid", func(t *testing.T) {
		id := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
		rec, seen := serveRequestID(t, id)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces anything else", func(t *testing.T) {
		rec, seen := serveRequestID(t, "<script>")

		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("generates one when missing", func(t *testing.T) {
		_, seen := serveRequestID(t, "")
		assert.Len(t, seen, 36)
	})
}

func TestGetLoggerOutsideRequest(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NotNil(t, GetLogger(c))
}
