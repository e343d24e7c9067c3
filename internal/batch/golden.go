package batch

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// MarshalReport renders a report as indented JSON with a trailing newline.
func MarshalReport(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// AssertGolden compares a report against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/batch -update
func AssertGolden(t *testing.T, name string, r *Report) error {
	t.Helper()

	data, err := MarshalReport(r)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
