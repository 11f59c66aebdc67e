package provider

import (
	"context"
	"encoding/json"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// Fixture replays power sources recorded in a JSON file. The file is re-read
// on every call so it can be edited while a daemon is running.
type Fixture struct {
	path string
}

var _ PowerSourceProvider = &Fixture{}

func NewFixture(path string) *Fixture {
	return &Fixture{path: path}
}

func (f *Fixture) Name() string { return NameFixture }

func (f *Fixture) ListPowerSources(_ context.Context) ([]powerinfo.PowerSource, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read fixture %s", f.path)
	}

	var sources []powerinfo.PowerSource
	if err := json.Unmarshal(b, &sources); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal fixture %s", f.path)
	}

	return sources, nil
}
