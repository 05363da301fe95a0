package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("welcome preview", func(t *testing.T) {
		html, err := Render(TemplateWelcome, PreviewData[TemplateWelcome])

		require.NoError(t, err)
		assert.Contains(t, html, "Welcome to Bookshelf, Ada Lovelace!")
	})

	t.Run("escapes user input", func(t *testing.T) {
		html, err := Render(TemplateWelcome, map[string]string{"UserName": "<script>"})

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := Render(Template("missing"), nil)
		assert.Error(t, err)
	})
}

func TestSendWelcomeEmail(t *testing.T) {
	var received resend.SendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer srv.Close()

	rc := resend.NewClient("re_test")
	rc.BaseURL, _ = url.Parse(srv.URL + "/")

	logger := zerolog.Nop()
	c := &Client{client: rc, from: DefaultFrom, logger: &logger}

	require.NoError(t, c.SendWelcomeEmail(context.Background(), "ada@example.com", ""))

	assert.Equal(t, []string{"ada@example.com"}, received.To)
	assert.Equal(t, DefaultFrom, received.From)
	assert.Equal(t, "Welcome to Bookshelf!", received.Subject)
	assert.Contains(t, received.Html, "ada@example.com")
}
