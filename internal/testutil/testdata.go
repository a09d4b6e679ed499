package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// Fixture is a golden decode case stored under testdata/.
type Fixture struct {
	Name         string         `yaml:"name"`
	Hex          string         `yaml:"hex"`
	DownlinkData string         `yaml:"downlink_data"`
	Driver       string         `yaml:"driver"`
	Fields       map[string]any `yaml:"fields"`
}

// LoadFixtures decodes a YAML list of fixtures relative to the repo
// testdata directory.
func LoadFixtures(t *testing.T, rel string) []Fixture {
	t.Helper()
	var fixtures []Fixture
	if err := yaml.Unmarshal(readTestdata(t, rel), &fixtures); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
	if len(fixtures) == 0 {
		t.Fatalf("no fixtures in %s", rel)
	}
	return fixtures
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
