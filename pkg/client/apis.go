package client

import (
	"encoding/json"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/powerstate"
	"github.com/charlie0129/powerstate/pkg/config"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// GetPowerState asks the daemon to query its provider. With cached set the
// daemon answers with its last polled value instead.
func (c *Client) GetPowerState(cached bool) (powerinfo.PowerInfo, error) {
	path := "/power-state"
	if cached {
		path += "?cached=true"
	}

	ret, err := c.Get(path)
	if err != nil {
		return powerinfo.PowerInfo{}, pkgerrors.Wrapf(err, "failed to get power state")
	}

	var info powerinfo.PowerInfo
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return powerinfo.PowerInfo{}, pkgerrors.Wrapf(err, "failed to unmarshal power state")
	}

	return info, nil
}

func (c *Client) GetPowerSources() (*powerstate.Snapshot, error) {
	ret, err := c.Get("/power-sources")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get power sources")
	}

	var snap powerstate.Snapshot
	if err := json.Unmarshal([]byte(ret), &snap); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal power sources")
	}

	return &snap, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}
