package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notePage(n, page, pages, size, total int) Page[Note] {
	items := make([]Note, n)
	for i := range items {
		items[i] = Note{ID: i + 1, DocumentName: "doc"}
	}
	return Page[Note]{Items: items, Page: page, Pages: pages, Size: size, Total: total}
}

func TestApprovedNotesSuccess(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes/approved", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(notePage(18, 2, 2, 20, 38))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res := c.ApprovedNotes(context.Background(), SearchParams{
		Category: "GCE 'O' Levels", Page: 2, Size: 20,
	})

	require.True(t, res.OK)
	assert.Len(t, res.Data.Items, 18)
	assert.Equal(t, 2, res.Data.Page)
	assert.Equal(t, 38, res.Data.Total)
	assert.Equal(t, "GCE 'O' Levels", gotQuery.Get("category"))

	view := BuildListView(res)
	assert.Equal(t, PanelList, view.Panel)
	assert.True(t, view.NextDisabled, "page 2 of 2 must disable Next")
	assert.False(t, view.PrevDisabled)
}

func TestApprovedNotesStripsZeroYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("year"), "year=0 must be omitted from the request")
		_ = json.NewEncoder(w).Encode(notePage(0, 1, 0, 10, 0))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res := c.ApprovedNotes(context.Background(), SearchParams{Year: 0, Page: 1})
	require.True(t, res.OK)
}

func TestApprovedNotesDoesNotErrorOnTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, nil)
	res := c.ApprovedNotes(context.Background(), SearchParams{})

	require.False(t, res.OK)
	assert.Contains(t, res.Err, GenericErrorMessage)
}

func TestPendingNotesMapsStatusToMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notes/pending", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res := c.PendingNotes(context.Background(), SearchParams{})

	require.False(t, res.OK)
	assert.Equal(t, MessageForStatus(http.StatusForbidden), res.Err)
}

func TestLibraryClampsStalePage(t *testing.T) {
	var mu sync.Mutex
	var pagesRequested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pagesRequested = append(pagesRequested, page)
		mu.Unlock()
		if page == "7" {
			// The filter change shrank the result set: page 7 is past the end.
			_ = json.NewEncoder(w).Encode(notePage(0, 7, 2, 10, 12))
			return
		}
		_ = json.NewEncoder(w).Encode(notePage(2, 2, 2, 10, 12))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	var gotParams SearchParams
	var gotRes Result[Page[Note]]
	lib := NewLibrary(c, false, func(p SearchParams, res Result[Page[Note]]) {
		gotParams = p
		gotRes = res
	})
	defer lib.Close()

	lib.Load(context.Background(), SearchParams{Page: 7, Size: 10})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"7", "2"}, pagesRequested)
	require.True(t, gotRes.OK)
	assert.Equal(t, 2, gotParams.Page, "caller must be redirected to the last valid page")
	assert.Equal(t, 2, gotRes.Data.Page)
}

func TestLibraryDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") == "slow" {
			<-release
			_ = json.NewEncoder(w).Encode(notePage(1, 1, 1, 10, 1))
			return
		}
		_ = json.NewEncoder(w).Encode(notePage(3, 1, 1, 10, 3))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	var mu sync.Mutex
	var updates []SearchParams
	lib := NewLibrary(c, false, func(p SearchParams, res Result[Page[Note]]) {
		mu.Lock()
		updates = append(updates, p)
		mu.Unlock()
	})
	defer lib.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		lib.Load(context.Background(), SearchParams{Keyword: "slow"})
	}()
	time.Sleep(50 * time.Millisecond) // let the slow request get issued first
	go func() {
		defer wg.Done()
		lib.Load(context.Background(), SearchParams{Keyword: "fast"})
	}()

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 1, "the superseded response must be discarded")
	assert.Equal(t, "fast", updates[0].Keyword)
}

func TestLibraryNavigateDebounces(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		_ = json.NewEncoder(w).Encode(notePage(1, 1, 1, 10, 1))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	done := make(chan SearchParams, 4)
	lib := NewLibrary(c, false, func(p SearchParams, res Result[Page[Note]]) {
		done <- p
	})
	defer lib.Close()

	// Three rapid page clicks collapse into one fetch for the last page.
	lib.Navigate(context.Background(), SearchParams{Page: 2})
	lib.Navigate(context.Background(), SearchParams{Page: 3})
	lib.Navigate(context.Background(), SearchParams{Page: 4})

	select {
	case p := <-done:
		assert.Equal(t, 4, p.Page)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced navigation never fired")
	}

	// Give any erroneously-scheduled extra fetches a chance to land.
	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, requests)
}
