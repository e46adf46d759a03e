package helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchPage(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	body, err := FetchPage(server.URL, "TestAgent/1.0")
	assert.NoError(t, err)

	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "ok")
	assert.Equal(t, "TestAgent/1.0", gotAgent)
}

func TestFetchPageNonUTF8(t *testing.T) {
	// EUC-KR encoded "한글" with a matching Content-Type; the body must come
	// back converted to UTF-8
	eucKR := []byte{0xc7, 0xd1, 0xb1, 0xdb}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write(eucKR)
	}))
	defer server.Close()

	body, err := FetchPage(server.URL, "TestAgent/1.0")
	assert.NoError(t, err)

	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Equal(t, "한글", string(data))
}

func TestFetchPageErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchPage(server.URL, "TestAgent/1.0")
	assert.Error(t, err)
}
