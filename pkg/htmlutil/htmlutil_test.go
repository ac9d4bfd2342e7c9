package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t testing.TB, src string) *html.Node {
	node, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestVisibleLines(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name: "block elements break lines",
			src: `<div data-category-id="0x01">
				<div class="title">Tracer</div>
				<div class="value">42</div>
				<div class="title">Reaper</div>
				<div class="value">7</div>
			</div>`,
			expected: []string{"Tracer", "42", "Reaper", "7"},
		},
		{
			name:     "inline runs are joined",
			src:      `<p>Games <b>Won</b>   today</p>`,
			expected: []string{"Games Won today"},
		},
		{
			name: "table cells",
			src: `<table>
				<thead><tr><th><h5>Combat</h5></th></tr></thead>
				<tbody>
					<tr><td>Eliminations</td><td>1,234</td></tr>
					<tr><td>Time Spent on Fire</td><td>12:34</td></tr>
				</tbody>
			</table>`,
			expected: []string{"Combat", "Eliminations", "1,234", "Time Spent on Fire", "12:34"},
		},
		{
			name:     "scripts are hidden",
			src:      `<div>visible<script>var hidden = 1;</script></div><style>.x{}</style>`,
			expected: []string{"visible"},
		},
		{
			name:     "empty",
			src:      `<div>  </div>`,
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, VisibleLines(parse(t, test.src)))
		})
	}
}

func TestVisibleText(t *testing.T) {
	node := parse(t, `<ul><li>A</li><li>1</li><li>B</li><li>2</li></ul>`)
	require.Equal(t, "A\n1\nB\n2", VisibleText(node))
	require.Equal(t, "", VisibleText(nil))
}
