package dataset

import (
	"context"
	"dopingscatter/pkg/model"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

const DefaultURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/cyclist-data.json"

var ErrUnexpectedStatus = errors.New("unexpected status")

type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher uses http.DefaultClient when client is nil.
func NewFetcher(url string, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{url: url, client: client}
}

func (f *Fetcher) URL() string {
	return f.url
}

// Fetch downloads and decodes the rider records in a single request.
func (f *Fetcher) Fetch(ctx context.Context) ([]model.RaceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building dataset request")
	}
	req.Header.Set("Accept", "application/json")

	response, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", f.url)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "%s (%s)", response.Status, f.url)
	}

	var records []model.RaceRecord
	if err := json.NewDecoder(response.Body).Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decoding dataset")
	}
	return records, nil
}
