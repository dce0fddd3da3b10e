package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// ApprovedNotes fetches one page of the public library. The call never
// returns an error: failures come back as OK=false with a displayable
// message, and the caller keeps rendering whatever it had.
func (c *Client) ApprovedNotes(ctx context.Context, p SearchParams) Result[Page[Note]] {
	return c.fetchNotePage(ctx, "/notes/approved", p)
}

// PendingNotes is the admin variant over the moderation queue. Same request
// and response shapes as ApprovedNotes.
func (c *Client) PendingNotes(ctx context.Context, p SearchParams) Result[Page[Note]] {
	return c.fetchNotePage(ctx, "/notes/pending", p)
}

func (c *Client) fetchNotePage(ctx context.Context, path string, p SearchParams) Result[Page[Note]] {
	req, err := c.newRequest(ctx, http.MethodGet, path, p.Values(), nil)
	if err != nil {
		return failure[Page[Note]](fmt.Sprintf("%s (%v)", GenericErrorMessage, err))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure[Page[Note]](fmt.Sprintf("%s (%v)", GenericErrorMessage, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure[Page[Note]](MessageForStatus(resp.StatusCode))
	}
	var page Page[Note]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return failure[Page[Note]](fmt.Sprintf("%s (%v)", GenericErrorMessage, err))
	}
	if page.Items == nil {
		page.Items = []Note{}
	}
	return success(page)
}

// Library drives the listing for one page component: it owns the debounced
// navigation trigger, tags every fetch with a sequence number so a stale
// response can never overwrite a newer one, and redirects to the last valid
// page when a filter change strands the current page past the end.
type Library struct {
	client   *Client
	pending  bool
	onUpdate func(SearchParams, Result[Page[Note]])
	debounce *Debouncer
	seq      atomic.Uint64
}

// NewLibrary wires a listing flow. pending selects the moderation queue.
// onUpdate receives the effective params (after any page-clamp redirect)
// together with the fetch result; it is only invoked for the latest
// outstanding navigation.
func NewLibrary(c *Client, pending bool, onUpdate func(SearchParams, Result[Page[Note]])) *Library {
	return &Library{
		client:   c,
		pending:  pending,
		onUpdate: onUpdate,
		debounce: NewDebouncer(DefaultNavigateDelay),
	}
}

// Load fetches immediately. Used for the initial (mount) fetch, which is
// never debounced.
func (l *Library) Load(ctx context.Context, p SearchParams) {
	l.fetch(ctx, p)
}

// Navigate schedules a fetch behind the debounce window so rapid filter
// typing or page clicking collapses to a single request.
func (l *Library) Navigate(ctx context.Context, p SearchParams) {
	l.debounce.Do(func() {
		l.fetch(ctx, p)
	})
}

// Close stops any pending debounced navigation.
func (l *Library) Close() {
	l.debounce.Stop()
}

func (l *Library) fetch(ctx context.Context, p SearchParams) {
	seq := l.seq.Add(1)

	res := l.doFetch(ctx, p)
	if seq != l.seq.Load() {
		// A newer navigation was issued while this one was in flight.
		return
	}

	// Stale page after a filter change: redirect to the last valid page.
	if res.OK && res.Data.Pages > 0 && res.Data.Page > res.Data.Pages {
		p.Page = res.Data.Pages
		res = l.doFetch(ctx, p)
		if seq != l.seq.Load() {
			return
		}
	}

	if l.onUpdate != nil {
		l.onUpdate(p, res)
	}
}

func (l *Library) doFetch(ctx context.Context, p SearchParams) Result[Page[Note]] {
	if l.pending {
		return l.client.PendingNotes(ctx, p)
	}
	return l.client.ApprovedNotes(ctx, p)
}
