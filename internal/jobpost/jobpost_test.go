package jobpost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_Success(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body>
		<nav>Careers home</nav>
		<div class="job-description">
			<h1>Backend Engineer</h1>
			<ul><li>Go</li><li>PostgreSQL</li></ul>
		</div>
		<form class="application-form">Upload resume</form>
	</body></html>`)

	posting, err := NewFetcher(nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, posting.URL)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.False(t, posting.Rendered)
	assert.Contains(t, posting.Text, "Backend Engineer")
	assert.Contains(t, posting.Text, "- Go")
	assert.Contains(t, posting.Text, "- PostgreSQL")
	assert.NotContains(t, posting.Text, "Careers home")
	assert.NotContains(t, posting.Text, "Upload resume")
}

func TestFetch_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-url", "ftp://example.com/job", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewFetcher(nil).Fetch(context.Background(), raw)

			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "invalid URL", fetchErr.Message)
		})
	}
}

func TestFetch_HTTPStatus(t *testing.T) {
	srv := pageServer(t, http.StatusNotFound, "gone")

	_, err := NewFetcher(nil).Fetch(context.Background(), srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestFetch_EmptyPage(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body><script>render()</script></body></html>`)

	_, err := NewFetcher(nil).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestFetch_BrowserFallback(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body><div id="root">Loading</div></body></html>`)
	long := strings.Repeat("Design and operate distributed systems. ", 20)

	f := NewFetcher(&Options{Browser: true})
	var rendered string
	f.render = func(_ context.Context, url string) (string, error) {
		rendered = url
		return `<html><body><main><p>` + long + `</p></main></body></html>`, nil
	}

	posting, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, rendered)
	assert.True(t, posting.Rendered)
	assert.Contains(t, posting.Text, "distributed systems")
}

func TestFetch_BrowserFailure(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body><p>Short</p></body></html>`)

	f := NewFetcher(&Options{Browser: true})
	f.render = func(context.Context, string) (string, error) {
		return "", assert.AnError
	}

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "browser rendering failed")
}

func TestFetch_LongStaticPageSkipsBrowser(t *testing.T) {
	long := strings.Repeat("Own the billing platform end to end. ", 20)
	srv := pageServer(t, http.StatusOK, `<html><body><main><p>`+long+`</p></main></body></html>`)

	f := NewFetcher(&Options{Browser: true})
	f.render = func(context.Context, string) (string, error) {
		t.Fatal("browser should not be used")
		return "", nil
	}

	posting, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, posting.Rendered)
}

func TestError_Message(t *testing.T) {
	err := &Error{URL: "https://example.com", Message: "HTTP status 500"}
	assert.Equal(t, "fetch error for https://example.com: HTTP status 500", err.Error())
	assert.Nil(t, err.Unwrap())
}
