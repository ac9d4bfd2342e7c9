package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"overstats/internal/profile"

	"github.com/stretchr/testify/require"
)

const careerPage = `<html><body>
<div id="quickplay">
	<select data-group-id="comparisons"><option value="0x01">Games Won</option></select>
	<div data-category-id="0x01">
		<div>Tracer</div><div>42</div>
		<div>Reaper</div><div>7</div>
	</div>
	<select data-group-id="stats"><option value="0xFF">All Heroes</option></select>
	<div data-category-id="0xFF">
		<div class="card-stat-block"><h5>Combat</h5><div>Eliminations</div><div>1,234</div></div>
	</div>
</div>
<select data-group-id="achievements"><option value="0x02">General</option></select>
<div data-category-id="0x02">
	<div class="achievement-card"><div>Level 10</div></div>
	<div class="achievement-card"><div class="m-disabled"></div><div>Level 25</div></div>
</div>
</body></html>`

func TestWalkProfile(t *testing.T) {
	p := profile.NewProfile(profile.ProviderFunc(func(context.Context) (profile.Node, error) {
		return profile.ParseDocument(strings.NewReader(careerPage))
	}), profile.Options{})

	var out bytes.Buffer
	require.NoError(t, walkProfile(context.Background(), p, &out))

	expected := `Game Mode: quickplay
Comparison Types Available: [Games Won]
 - Comparison Type: Games Won
 - Heroes available to compare: [Tracer Reaper]
    - Tracer: 42
    - Reaper: 7
Heroes with Stats Available: [All Heroes]
 - Hero: All Heroes
 - Categories available for stats: [Combat]
    - Category: Combat
    - Stats available: [Eliminations]
       - Eliminations: 1234
Achievement Types Available: [General]
Achievement Type: General
 - earned
    - Level 10
 - missing
    - Level 25
`
	require.Equal(t, expected, out.String())
}

func TestCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/career/pc/Player-1234" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(careerPage))
	}))
	defer server.Close()

	configFile := filepath.Join(t.TempDir(), "overstats.json5")
	require.NoError(t, os.WriteFile(configFile, []byte(`{
		base_url: "`+server.URL+`",
		requests_per_second: 50,
	}`), 0600))

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(append(args, "--config", configFile))
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	out, err := run("dump", "Player#1234")
	require.NoError(t, err)
	require.Contains(t, out, `"Games Won": {`)
	require.Contains(t, out, `"Tracer": 42`)
	require.Equal(t, "pc", config.Platform)
	require.Equal(t, 30, config.TimeoutSeconds)

	out, err = run("table", "comparison", "Player#1234", "quickplay", "Games Won")
	require.NoError(t, err)
	require.Contains(t, out, "╭")
	require.Contains(t, out, "Tracer")
	require.Contains(t, strings.ToLower(out), "2 entries")

	_, err = run("table", "comparison", "Player#1234", "arcade", "Games Won")
	require.ErrorIs(t, err, profile.ErrInvalidArgument)

	_, err = run("dump", "Nobody#0000")
	require.Error(t, err)
}
