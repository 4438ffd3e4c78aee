package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/chartdraw"
	"github.com/gogpu/chartdraw/geom"
	"github.com/gogpu/chartdraw/paneview"
)

const demoScene = `
width: 400
height: 300
price: {min: 0, max: 100}
bars: {spacing: 10}
first_value: 50
tools:
  - id: trend
    kind: ray
    points: [[5, 50], [15, 75]]
    line: {color: "#2962ff", width: 2}
    selected: true
  - id: box
    kind: rectangle
    points: [[20, 20], [30, 10]]
    line: {color: "#f23645"}
    fill: {color: "#f23645", opacity: 0.2}
  - id: fib
    kind: fib
    points: [[2, 10], [12, 40]]
    labels: true
    prices: true
    levels:
      - {coeff: 0, color: "#787b86"}
      - {coeff: 0.5, color: "#4caf50"}
      - {coeff: 1, color: "#787b86"}
      - {coeff: 1.618, visible: false}
  - id: note
    kind: text
    points: [[25, 80]]
    text: "hello"
    background: "#ffffff"
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseScene(t *testing.T) {
	sc, err := ParseScene(strings.NewReader(demoScene))
	require.NoError(t, err)
	assert.Equal(t, 400.0, sc.Width)
	assert.Equal(t, "light", sc.Theme)
	assert.Equal(t, 12.0, sc.Font.Size)
	require.Len(t, sc.Tools, 4)
	assert.Equal(t, [2]float64{15, 75}, sc.Tools[0].Points[1])

	views, err := sc.Views(sc.Env(nil))
	require.NoError(t, err)
	require.Len(t, views, 4)
	assert.IsType(t, &paneview.TrendLineView{}, views[0])
	assert.IsType(t, &paneview.FibRetracementView{}, views[2])
	assert.Equal(t, "note", views[3].ID())
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "widht: 10\n", "widht"},
		{"unknown kind", "tools: [{kind: spiral, points: [[1, 1]]}]\n", "unknown kind"},
		{"bad color", "tools: [{kind: horizontal, points: [[1, 1]], line: {color: red}}]\n", "parse color"},
		{"bad dash", "tools: [{kind: horizontal, points: [[1, 1]], line: {dash: wavy}}]\n", "unknown dash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScene(strings.NewReader(tt.body))
			if err == nil {
				_, err = sc.Views(sc.Env(nil))
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScene_DefaultIDsAndScales(t *testing.T) {
	sc, err := ParseScene(strings.NewReader("price: {min: 10, max: 1000, log: true}\ntools: [{kind: vertical, points: [[3, 100]]}]\n"))
	require.NoError(t, err)
	assert.Equal(t, "vertical-0", sc.Tools[0].ID)

	ps, ts, owner := sc.scales()
	assert.True(t, ps.IsLog())
	assert.InDelta(t, 300, ps.PriceToCoordinate(100, 0), 1e-9)
	assert.InDelta(t, 30, ts.IndexToCoordinate(3), 1e-9)
	first, ok := owner.FirstValue()
	assert.True(t, ok)
	assert.Equal(t, 10.0, first)
}

func TestRun_HitAndRender(t *testing.T) {
	for _, backend := range []string{"gg", "fogleman"} {
		t.Run(backend, func(t *testing.T) {
			scene := writeScene(t, demoScene)
			output := filepath.Join(t.TempDir(), "out.png")
			var stdout, stderr bytes.Buffer

			// The second point of the selected ray sits at (150, 75).
			err := run([]string{"-scene", scene, "-output", output, "-backend", backend, "-ratio", "2", "-hit", "150,75"}, &stdout, &stderr)
			require.NoError(t, err, stderr.String())
			assert.Equal(t, "ChangePoint(point=1, cursor=pointer)\n", stdout.String())

			f, err := os.Open(output)
			require.NoError(t, err)
			defer f.Close()
			cfg, err := png.DecodeConfig(f)
			require.NoError(t, err)
			assert.Equal(t, 800, cfg.Width)
			assert.Equal(t, 600, cfg.Height)
		})
	}
}

func TestRun_HitOnly(t *testing.T) {
	scene := writeScene(t, demoScene)
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-scene", scene, "-output", "", "-hit", "390,10"}, &stdout, &stderr))
	assert.Equal(t, "<no hit>\n", stdout.String())
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run([]string{"-scene", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr))

	scene := writeScene(t, demoScene)
	assert.ErrorContains(t, run([]string{"-scene", scene, "-backend", "cairo", "-output", filepath.Join(t.TempDir(), "x.png")}, &stdout, &stderr), "unknown backend")
	assert.ErrorContains(t, run([]string{"-scene", scene, "-output", "", "-hit", "12"}, &stdout, &stderr), "want x,y")
}

func TestParsePoint(t *testing.T) {
	pt, err := parsePoint(" 12.5, 40 ")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(12.5, 40), pt)

	_, err = parsePoint("a,1")
	assert.Error(t, err)
}

func TestRun_VerboseLogs(t *testing.T) {
	scene := writeScene(t, demoScene)
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-scene", scene, "-output", "", "-v"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "scene built")
	assert.Contains(t, stderr.String(), "graph rebuilt")
	assert.False(t, chartdraw.Logger().Enabled(t.Context(), slog.LevelDebug), "the logger is reset after run")
}

func TestExampleScene(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "scene.yaml"))
	require.NoError(t, err)
	defer f.Close()
	sc, err := ParseScene(f)
	require.NoError(t, err)

	views, err := sc.Views(sc.Env(nil))
	require.NoError(t, err)
	require.Len(t, views, 17)
	assert.Equal(t, "marker-16", views[16].ID())

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-scene", filepath.Join("testdata", "scene.yaml"), "-output", "", "-hit", "5000,5000"}, &stdout, &stderr))
	assert.Equal(t, "<no hit>\n", stdout.String())
}
