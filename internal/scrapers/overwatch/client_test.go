package overwatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"overstats/internal/components/telemetry"
	"overstats/internal/profile"
	libtelemetry "overstats/lib/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const careerPage = `<html><body>
<div id="quickplay">
	<select data-group-id="comparisons"><option value="0x0860000000000039">Games Won</option></select>
	<div data-category-id="0x0860000000000039">
		<div>Tracer</div><div>42</div>
		<div>Reaper</div><div>7</div>
	</div>
</div>
<select data-group-id="achievements"><option value="0x0861">General</option></select>
<div data-category-id="0x0861">
	<div class="achievement-card"><div class="media-card-title">Level 10</div></div>
	<div class="achievement-card"><div class="m-disabled"></div><div class="media-card-title">Level 25</div></div>
</div>
</body></html>`

func TestCareerPath(t *testing.T) {
	testCases := []struct {
		platform  Platform
		battletag string
		expected  string
	}{
		{platform: PlatformPC, battletag: "Player#1234", expected: "/career/pc/Player-1234"},
		{platform: PlatformPC, battletag: " Player#1234 ", expected: "/career/pc/Player-1234"},
		{platform: PlatformPlaystation, battletag: "Ehh Freezy", expected: "/career/psn/Ehh%20Freezy"},
		{platform: PlatformXbox, battletag: "Dethroned#1", expected: "/career/xbl/Dethroned%231"},
		{platform: PlatformPC, battletag: "a/b", expected: "/career/pc/a%2Fb"},
	}
	for _, test := range testCases {
		path, err := CareerPath(test.platform, test.battletag)
		require.NoError(t, err)
		require.Equal(t, test.expected, path)
	}
}

func TestCareerPathInvalid(t *testing.T) {
	_, err := CareerPath("switch", "Player#1234")
	require.ErrorIs(t, err, profile.ErrInvalidArgument)

	_, err = CareerPath(PlatformPC, "  ")
	require.ErrorIs(t, err, ErrInvalidBattletag)

	_, err = ParsePlatform("PC")
	require.ErrorIs(t, err, profile.ErrInvalidArgument)

	platform, err := ParsePlatform("psn")
	require.NoError(t, err)
	require.Equal(t, PlatformPlaystation, platform)
}

type careerServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newCareerServer(t testing.TB) *careerServer {
	s := &careerServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/career/pc/Player-1234", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("content-type", "text/html")
		w.Write([]byte(careerPage))
	})
	mux.HandleFunc("/career/psn/broken", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		http.NotFound(w, r)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t testing.TB, baseUrl string) *Client {
	libtelemetry.SetupForTesting(t, "test:overwatch")
	client, err := NewClient(ClientOptions{
		BaseUrl:           baseUrl,
		RequestsPerSecond: 100,
	}, telemetry.SlogAPI{})
	require.NoError(t, err)
	return client
}

func TestCareerPage(t *testing.T) {
	server := newCareerServer(t)
	client := newTestClient(t, server.URL)

	doc, err := client.CareerPage(context.Background(), PlatformPC, "Player#1234")
	require.NoError(t, err)

	node, ok, err := profile.FindUnique(doc, profile.ByAttr("div", "id", "quickplay"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, node.Text(), "Tracer\n42")
}

func TestCareerPageNotFound(t *testing.T) {
	server := newCareerServer(t)
	client := newTestClient(t, server.URL)

	_, err := client.CareerPage(context.Background(), PlatformPC, "Nobody#0000")
	require.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = client.CareerPage(context.Background(), PlatformPlaystation, "broken")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrPlayerNotFound))
}

func TestPlayerValidatesWithoutFetching(t *testing.T) {
	server := newCareerServer(t)
	client := newTestClient(t, server.URL)

	_, err := client.Player("switch", "Player#1234")
	require.ErrorIs(t, err, profile.ErrInvalidArgument)

	_, err = client.NewProfile(PlatformPC, "", profile.Options{})
	require.ErrorIs(t, err, ErrInvalidBattletag)

	_, err = client.NewProfile(PlatformPC, "Player#1234", profile.Options{})
	require.NoError(t, err)

	require.Equal(t, int32(0), server.hits.Load())
}

func TestProfileOverHttp(t *testing.T) {
	server := newCareerServer(t)
	client := newTestClient(t, server.URL)

	p, err := client.NewProfile(PlatformPC, "Player#1234", profile.Options{})
	require.NoError(t, err)

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := p.Comparison(ctx, profile.ModeQuickplay, "Games Won", "Tracer")
			if assert.NoError(t, err) {
				assert.Equal(t, int64(42), v.Int())
			}
		}()
	}
	wg.Wait()

	missing, err := p.AchievementNames(ctx, "General", profile.ListMissing)
	require.NoError(t, err)
	require.Equal(t, []string{"Level 25"}, missing)

	require.Equal(t, int32(1), server.hits.Load())
}

func TestProfileOverHttpPlayerNotFound(t *testing.T) {
	server := newCareerServer(t)
	client := newTestClient(t, server.URL)

	p, err := client.NewProfile(PlatformXbox, "Nobody", profile.Options{})
	require.NoError(t, err)

	_, err = p.Modes(context.Background())
	require.ErrorIs(t, err, ErrPlayerNotFound)

	// the failure is not cached
	_, err = p.Modes(context.Background())
	require.ErrorIs(t, err, ErrPlayerNotFound)
	require.Equal(t, int32(2), server.hits.Load())
}
