package client

import (
	"context"
	"sync"
)

// Panel selects what the render layer shows for a listing result.
type Panel int

const (
	// PanelError shows the fetch failure message. Chosen whenever the
	// result is not OK, regardless of any data the result carries.
	PanelError Panel = iota
	// PanelEmpty shows the "no documents found" state for a successful
	// fetch with zero items.
	PanelEmpty
	// PanelList shows the note rows.
	PanelList
)

// ListView is everything a table/card view needs to render one listing
// state: which panel, the rows, and the pagination control flags.
type ListView struct {
	Panel        Panel
	Message      string
	Notes        []Note
	Page         int
	Pages        int
	Total        int
	PrevDisabled bool
	NextDisabled bool
}

// BuildListView maps a fetch result onto render state. Error beats empty:
// a failed result shows the error panel even if stale data is present.
func BuildListView(res Result[Page[Note]]) ListView {
	if !res.OK {
		return ListView{
			Panel:        PanelError,
			Message:      res.Err,
			PrevDisabled: true,
			NextDisabled: true,
		}
	}
	if len(res.Data.Items) == 0 {
		return ListView{
			Panel:        PanelEmpty,
			Page:         res.Data.Page,
			Pages:        res.Data.Pages,
			PrevDisabled: true,
			NextDisabled: true,
		}
	}
	return ListView{
		Panel:        PanelList,
		Notes:        res.Data.Items,
		Page:         res.Data.Page,
		Pages:        res.Data.Pages,
		Total:        res.Data.Total,
		PrevDisabled: res.Data.Page <= 1,
		NextDisabled: res.Data.Page >= res.Data.Pages,
	}
}

// ModalState is the lifecycle of an admin-action confirmation modal.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
	ModalSubmitting
)

// Toast is a transient success/failure notification for the user.
type Toast struct {
	Success bool
	Message string
}

// ActionModal is one self-contained admin action: confirmation modal,
// backend call, and forced refresh of the current view. State updates are
// never optimistic; on success the current page is always re-fetched so the
// UI reflects backend truth.
//
//	Closed -> Open        user clicks the trigger
//	Open   -> Submitting  user confirms; trigger disabled
//	Submitting -> Closed  backend call succeeded; toast + refresh
//	Submitting -> Open    backend call failed; error toast, modal stays
type ActionModal struct {
	mu      sync.Mutex
	state   ModalState
	action  func(ctx context.Context) error
	refresh func(ctx context.Context)
	toast   func(Toast)
}

// NewActionModal builds an action unit. action performs the backend call and
// returns a displayable error on failure; refresh re-runs the current page's
// data fetch; toast surfaces the outcome. refresh and toast may be nil.
func NewActionModal(action func(ctx context.Context) error, refresh func(ctx context.Context), toast func(Toast)) *ActionModal {
	return &ActionModal{action: action, refresh: refresh, toast: toast}
}

func (m *ActionModal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open shows the confirmation modal. No-op unless currently closed.
func (m *ActionModal) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalClosed {
		m.state = ModalOpen
	}
}

// Cancel dismisses the modal without acting. Ignored while submitting.
func (m *ActionModal) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == ModalOpen {
		m.state = ModalClosed
	}
}

// Confirm runs the backend call. On success the modal closes, a success
// toast fires, and the view is refreshed; on failure the modal stays open
// for retry with an error toast. Confirm is a no-op unless the modal is
// open.
func (m *ActionModal) Confirm(ctx context.Context) {
	m.mu.Lock()
	if m.state != ModalOpen {
		m.mu.Unlock()
		return
	}
	m.state = ModalSubmitting
	m.mu.Unlock()

	err := m.action(ctx)

	m.mu.Lock()
	if err != nil {
		m.state = ModalOpen
		m.mu.Unlock()
		if m.toast != nil {
			m.toast(Toast{Success: false, Message: err.Error()})
		}
		return
	}
	m.state = ModalClosed
	m.mu.Unlock()

	if m.toast != nil {
		m.toast(Toast{Success: true, Message: "Done."})
	}
	if m.refresh != nil {
		m.refresh(ctx)
	}
}
