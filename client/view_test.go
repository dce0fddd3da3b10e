package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListViewErrorPanelWinsOverData(t *testing.T) {
	res := Result[Page[Note]]{
		OK:   false,
		Err:  "boom",
		Data: notePage(5, 1, 1, 10, 5), // stale data must be ignored
	}
	view := BuildListView(res)
	assert.Equal(t, PanelError, view.Panel)
	assert.Equal(t, "boom", view.Message)
	assert.Empty(t, view.Notes)
}

func TestBuildListViewEmptyPanel(t *testing.T) {
	view := BuildListView(success(notePage(0, 1, 0, 10, 0)))
	assert.Equal(t, PanelEmpty, view.Panel)
	assert.Empty(t, view.Message)
}

func TestBuildListViewPaginationFlags(t *testing.T) {
	first := BuildListView(success(notePage(10, 1, 3, 10, 25)))
	assert.Equal(t, PanelList, first.Panel)
	assert.True(t, first.PrevDisabled)
	assert.False(t, first.NextDisabled)

	middle := BuildListView(success(notePage(10, 2, 3, 10, 25)))
	assert.False(t, middle.PrevDisabled)
	assert.False(t, middle.NextDisabled)

	last := BuildListView(success(notePage(5, 3, 3, 10, 25)))
	assert.False(t, last.PrevDisabled)
	assert.True(t, last.NextDisabled)
}

func TestActionModalApproveFlow(t *testing.T) {
	approved := false
	refetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/approve/42", r.URL.Path)
		approved = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	var toasts []Toast
	modal := NewActionModal(
		func(ctx context.Context) error { return c.ApproveNote(ctx, 42) },
		func(ctx context.Context) { refetches++ },
		func(tst Toast) { toasts = append(toasts, tst) },
	)

	assert.Equal(t, ModalClosed, modal.State())
	modal.Open()
	assert.Equal(t, ModalOpen, modal.State())

	modal.Confirm(context.Background())

	assert.True(t, approved)
	assert.Equal(t, ModalClosed, modal.State())
	assert.Equal(t, 1, refetches, "success must force a re-fetch of the current view")
	require.Len(t, toasts, 1)
	assert.True(t, toasts[0].Success)
}

func TestActionModalStaysOpenOnFailure(t *testing.T) {
	refetches := 0
	var toasts []Toast
	modal := NewActionModal(
		func(ctx context.Context) error { return errors.New(MessageForStatus(409)) },
		func(ctx context.Context) { refetches++ },
		func(tst Toast) { toasts = append(toasts, tst) },
	)

	modal.Open()
	modal.Confirm(context.Background())

	assert.Equal(t, ModalOpen, modal.State(), "failure keeps the modal open for retry")
	assert.Zero(t, refetches, "no refresh on failure")
	require.Len(t, toasts, 1)
	assert.False(t, toasts[0].Success)
	assert.Equal(t, MessageForStatus(409), toasts[0].Message)
}

func TestActionModalConfirmRequiresOpen(t *testing.T) {
	called := false
	modal := NewActionModal(
		func(ctx context.Context) error { called = true; return nil },
		nil, nil,
	)
	modal.Confirm(context.Background())
	assert.False(t, called, "confirming a closed modal must do nothing")
}

func TestActionModalCancel(t *testing.T) {
	modal := NewActionModal(func(ctx context.Context) error { return nil }, nil, nil)
	modal.Open()
	modal.Cancel()
	assert.Equal(t, ModalClosed, modal.State())
}
