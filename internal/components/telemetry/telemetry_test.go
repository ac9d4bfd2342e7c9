package telemetry

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type report struct {
	level  string
	id     string
	params []any
}

type recordingAPI struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingAPI) record(level, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{level: level, id: id, params: params})
}

func (r *recordingAPI) ReportBroken(id string, params ...any)  { r.record("broken", id, params) }
func (r *recordingAPI) ReportWarning(id string, params ...any) { r.record("warning", id, params) }
func (r *recordingAPI) ReportDebug(msg string, params ...any)  { r.record("debug", msg, params) }
func (r *recordingAPI) ReportCount(id string, count int64)     { r.record("count", id, []any{count}) }

func (r *recordingAPI) ids(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, rep := range r.reports {
		if rep.level == level {
			out = append(out, rep.id)
		}
	}
	return out
}

func TestScopedAPI(t *testing.T) {
	inner := &recordingAPI{}
	tel := NewScopedAPI("overwatch_scraper", NewScopedAPI("cli", inner))

	tel.ReportBroken("client.career-page", "boom")
	tel.ReportWarning("profile.load")
	tel.ReportDebug("fetching")
	tel.ReportCount("builds", 2)

	require.Equal(t, []string{"cli: overwatch_scraper: client.career-page"}, inner.ids("broken"))
	require.Equal(t, []string{"cli: overwatch_scraper: profile.load"}, inner.ids("warning"))
	require.Equal(t, []string{"cli: overwatch_scraper: fetching"}, inner.ids("debug"))
	require.Equal(t, []string{"cli: overwatch_scraper: builds"}, inner.ids("count"))
	require.Equal(t, []any{"boom"}, inner.reports[0].params)
}

func TestScopedAPIRequiresNamespace(t *testing.T) {
	require.Panics(t, func() { NewScopedAPI("", SlogAPI{}) })
	require.Panics(t, func() { NewScopedAPI("profile", nil) })
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	tel := &recordingAPI{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, tel)

	_, err := client.R().Get("/career/pc/Player-1234")
	require.NoError(t, err)
	require.Equal(t, []string{report_resty_request, report_resty_response}, tel.ids("debug"))
	require.Empty(t, tel.ids("warning"))

	server.Close()
	_, err = client.R().Get("/career/pc/Player-1234")
	require.Error(t, err)
	require.Equal(t, []string{report_resty_response}, tel.ids("broken"))
}
