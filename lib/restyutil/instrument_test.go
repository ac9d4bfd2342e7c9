package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu       sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.messages == nil {
		o.messages = map[string]string{}
	}
	o.messages[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-career", "yes")
		w.Write([]byte("<html>career</html>"))
	}))
	defer server.Close()

	output := &memoryOutput{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentClient(client, output)

	_, err := client.R().Get("/career/pc/Player-1234")
	require.NoError(t, err)
	_, err = client.R().Get("/career/psn/Player")
	require.NoError(t, err)

	require.Len(t, output.messages, 2)
	first := output.messages["1"]
	require.Contains(t, first, "GET "+server.URL+"/career/pc/Player-1234")
	require.Contains(t, first, "X-Career: yes")
	require.Contains(t, first, "<html>career</html>")
	require.Contains(t, first, "---- RESPONSE ----\n\n200 ")
}

func TestInstrumentClientError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	output := &memoryOutput{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentClient(client, output)

	_, err := client.R().Get("/career/pc/Player-1234")
	require.Error(t, err)
	require.Contains(t, output.messages["1"], "---- ERROR ----")
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	InstrumentClient(client, nil)
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resty")
	require.NoError(t, os.MkdirAll(dir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale"), []byte("old"), 0600))

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("1", "message")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	contents, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Equal(t, "message", string(contents))
}
