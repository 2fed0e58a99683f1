package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
farm:
  total_acres: 100
  width_m: 800
grid:
  cell_acres: 0.25
fleet:
  size: 5
plan:
  seed: 7
  center_filter: true
output:
  dir: out
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 100.0, cfg.Farm.TotalAcres)
	require.Equal(t, 0.25, cfg.Grid.CellAcres)
	require.Equal(t, 1.0, cfg.Grid.SliverM2, "sliver default")
	require.Equal(t, 5, cfg.Fleet.Size)
	require.Equal(t, int64(7), cfg.Plan.Seed)
	require.True(t, cfg.Plan.CenterFilter)
	require.Equal(t, "zone_allocation.csv", cfg.Output.CSVName)
	require.Equal(t, ":9090", cfg.Metrics.Listen)
}

func TestLoadJSONExplicitBoundary(t *testing.T) {
	path := writeTemp(t, "config.json", `{
  "farm": {"boundary": [[0,0],[100,0],[100,50],[0,50]]},
  "fleet": {"vehicles": [{"id": 1, "battery_fraction": 0.8}]}
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	poly := cfg.Farm.Polygon()
	require.Len(t, poly.Vertices, 4)
	require.InDelta(t, 5000.0, poly.Area(), 1e-9)
	require.Len(t, cfg.Fleet.Vehicles, 1)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "config.toml", "x = 1")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"negative acres": `{"farm": {"total_acres": -1, "width_m": 100}}`,
		"short boundary": `{"farm": {"boundary": [[0,0],[1,1]]}}`,
		"bad fraction":   `{"plan": {"high_priority_fraction": 2}}`,
		"bad battery":    `{"fleet": {"vehicles": [{"id": 0, "battery_fraction": 1.5}]}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, "config.json", content)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestSyntheticFarmPolygon(t *testing.T) {
	var cfg FarmConfig
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	poly := cfg.Polygon()
	require.Len(t, poly.Vertices, 4)
	// 200 acres in square meters.
	require.InDelta(t, 200*4046.8564224, poly.Area(), 1e-4)
}
