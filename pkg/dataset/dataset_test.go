package dataset_test

import (
	"context"
	"dopingscatter/pkg/dataset"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const fixture = `[
  {"Time":"36:50","Place":1,"Seconds":2210,"Name":"Marco Pantani","Year":1995,"Nationality":"ITA","Doping":"Alleged drug use during 1995 due to high hematocrit levels","URL":"https://en.wikipedia.org/wiki/Marco_Pantani#Alleged_drug_use"},
  {"Time":"39:22","Place":35,"Seconds":2362,"Name":"Nairo Quintana","Year":2015,"Nationality":"COL","Doping":"","URL":""}
]`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := serve(t, http.StatusOK, fixture)

	records, err := dataset.NewFetcher(srv.URL, nil).Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Marco Pantani", records[0].Name)
	require.Equal(t, 1995, records[0].Year)
	require.Equal(t, "36:50", records[0].Time)
	require.True(t, records[0].HasDopingAllegation())
	require.Equal(t, 35, records[1].Place)
	require.False(t, records[1].HasDopingAllegation())
}

func TestFetch_unexpectedStatus(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "nope")

	_, err := dataset.NewFetcher(srv.URL, nil).Fetch(context.Background())

	require.ErrorIs(t, err, dataset.ErrUnexpectedStatus)
	require.ErrorContains(t, err, "404")
}

func TestFetch_malformedBody(t *testing.T) {
	srv := serve(t, http.StatusOK, `{"not":"a list"}`)

	_, err := dataset.NewFetcher(srv.URL, nil).Fetch(context.Background())

	require.ErrorContains(t, err, "decoding dataset")
}

func TestFetch_honoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := dataset.NewFetcher(srv.URL, nil).Fetch(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
