package client

import (
	"encoding/json"
	"net/url"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/lsv/pkg/lsv"
)

// GetBatch fetches the analysis of the served dataset. Results come without
// their interpolated curves.
func (c *Client) GetBatch() (*lsv.Batch, error) {
	ret, err := c.Get("/api/batch")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get batch")
	}

	var b lsv.Batch
	if err := json.Unmarshal([]byte(ret), &b); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal batch")
	}
	return &b, nil
}

func (c *Client) GetSelection() (*lsv.Selection, error) {
	ret, err := c.Get("/api/files")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get file selection")
	}

	var sel lsv.Selection
	if err := json.Unmarshal([]byte(ret), &sel); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal file selection")
	}
	return &sel, nil
}

func (c *Client) GetResult(file string) (*lsv.Result, error) {
	ret, err := c.Get("/api/results/" + url.PathEscape(file))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get result of %s", file)
	}

	var r lsv.Result
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal result of %s", file)
	}
	return &r, nil
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
