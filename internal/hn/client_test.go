package hn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, time.Second, 0), srv
}

func TestTopStories(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topstories.json", r.URL.Path)
		fmt.Fprint(w, `[101, 102, 103]`)
	})
	defer srv.Close()

	ids, err := c.TopStories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 103}, ids)
}

func TestTopStoriesBadPayloads(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-array": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"stories": [1, 2]}`)
		},
		"non-integer entries": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[1, "two", 3]`)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			c, srv := newTestClient(handler)
			defer srv.Close()

			_, err := c.TopStories(context.Background())
			assert.Error(t, err, "a broken listing is a retrieval failure, not an empty result")
		})
	}
}

func TestFetchItem(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/8863.json", r.URL.Path)
		fmt.Fprint(w, `{"id":8863,"type":"story","by":"dhouston","title":"My YC app","kids":[8952,9224],"descendants":71,"score":104}`)
	})
	defer srv.Close()

	item, err := c.Fetch(context.Background(), 8863)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 8863, item.ID)
	assert.Equal(t, "story", item.Type)
	assert.Equal(t, []int{8952, 9224}, item.Kids)
	require.NotNil(t, item.Descendants)
	assert.Equal(t, 71, *item.Descendants)
}

func TestFetchItemNoDescendantsClaim(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":9,"type":"comment","parent":8,"text":"ok"}`)
	})
	defer srv.Close()

	item, err := c.Fetch(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Nil(t, item.Descendants, "absent field must stay distinguishable from zero")
}

func TestFetchItemNormalizesFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"null body": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `null`)
		},
		"empty body": func(w http.ResponseWriter, r *http.Request) {},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": 1,`)
		},
		"non-object body": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[1, 2, 3]`)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			c, srv := newTestClient(handler)
			defer srv.Close()

			item, err := c.Fetch(context.Background(), 1)
			assert.NoError(t, err)
			assert.Nil(t, item)
		})
	}
}

func TestFetchItemTimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"id":1,"type":"story"}`)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, 30*time.Millisecond, 0)

	item, err := c.Fetch(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestFetchItemCancelledContextIsFatal(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"type":"story"}`)
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchItemTransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, time.Second, 0)
	item, err := c.Fetch(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, item)
}

// doerFunc substitutes the transport the way a fault-injection harness would.
type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestWithDoerIntercepts(t *testing.T) {
	var seen string
	c := NewClient("", time.Second, 0).WithDoer(doerFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.URL.String()
		rec := httptest.NewRecorder()
		fmt.Fprint(rec, `{"id":5,"type":"job"}`)
		return rec.Result(), nil
	}))

	item, err := c.Fetch(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "job", item.Type)
	assert.Equal(t, DefaultBaseURL+"/item/5.json", seen)
}
