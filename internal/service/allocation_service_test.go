// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/app"
	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/clock"
	"github.com/MKhiriev/go-panel-client/internal/flash"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/mock"
	"github.com/MKhiriev/go-panel-client/internal/validators"
	"github.com/MKhiriev/go-panel-client/models"
)

const testServer = "1a7ce997-259b-452e-8b4e-cecc464142ca"

type allocationFixture struct {
	svc     *allocationService
	panel   *mock.MockPanelAdapter
	store   *cache.Store[models.Allocation]
	flashes *flash.Store
	clock   *clock.Manual
}

// newAllocationFixture: сервис на моке панели и виртуальных часах
func newAllocationFixture(t *testing.T) *allocationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	panel := mock.NewMockPanelAdapter(ctrl)
	clk := clock.NewManual()

	store := cache.New[models.Allocation](CollectionAllocations, panel.GetAllocations, logger.Nop(),
		cache.WithAfterFunc(clk.AfterFunc),
		cache.WithStaleRetryDelay(0),
	)
	flashes := flash.New(logger.Nop())
	svc := NewAllocationService(panel, store, flashes, AllocationOptions{AfterFunc: clk.AfterFunc}, logger.Nop()).(*allocationService)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = svc.Close(ctx)
		store.Close()
	})

	return &allocationFixture{svc: svc, panel: panel, store: store, flashes: flashes, clock: clk}
}

// seed commits items as the authoritative list of testServer.
func (f *allocationFixture) seed(t *testing.T, items ...models.Allocation) {
	t.Helper()
	f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).Return(items, nil)
	require.NoError(t, f.svc.Refresh(context.Background(), testServer))
	require.Equal(t, cache.StatusCommitted, f.svc.Read(testServer).Status)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func alloc(id int64, primary bool) models.Allocation {
	return models.Allocation{ID: id, IP: "10.0.0.1", Port: 25564 + int(id), IsDefault: primary}
}

func primaryIDs(items []models.Allocation) []int64 {
	var ids []int64
	for _, item := range items {
		if item.IsDefault {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// ── SetPrimary ──────────────────────────────────────────────────────────────

func TestAllocationService_SetPrimary_VisibleBeforeRemoteCall(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false), alloc(3, false))

	release := make(chan struct{})
	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		DoAndReturn(func(ctx context.Context, _ string, _ int64) error {
			<-release
			return nil
		})

	m := f.svc.SetPrimary(testServer, 2)

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusPending, snap.Status)
	assert.Equal(t, []int64{2}, primaryIDs(snap.Items))
	assert.Nil(t, m.Err(), "mutation must still be in flight")
	assert.True(t, f.svc.Saving(testServer))

	close(release)
	require.NoError(t, m.Wait(waitCtx(t)))

	snap = f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Equal(t, []int64{2}, primaryIDs(snap.Items))
	assert.False(t, f.svc.Saving(testServer))
	assert.Empty(t, f.flashes.Messages(TopicNetwork))
}

func TestAllocationService_SetPrimary_RepeatedCallJoinsInFlight(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false), alloc(3, false))

	release := make(chan struct{})
	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		DoAndReturn(func(context.Context, string, int64) error {
			<-release
			return nil
		}).
		Times(1)

	first := f.svc.SetPrimary(testServer, 2)
	gen := f.svc.Read(testServer).Generation
	second := f.svc.SetPrimary(testServer, 2)

	assert.Same(t, first, second)
	assert.Equal(t, gen, f.svc.Read(testServer).Generation)

	close(release)
	require.NoError(t, first.Wait(waitCtx(t)))
	require.NoError(t, second.Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Equal(t, []int64{2}, primaryIDs(snap.Items))
}

func TestAllocationService_SetPrimary_MixedOutcomesLeaveOnePrimary(t *testing.T) {
	tests := []struct {
		name string
		// failFirst settles the failing call before the successful one.
		failFirst bool
		fetches   [][]models.Allocation
	}{
		{
			name:      "success settles first",
			failFirst: false,
			fetches: [][]models.Allocation{
				{alloc(1, false), alloc(2, false), alloc(3, true)},
			},
		},
		{
			name:      "failure settles first",
			failFirst: true,
			fetches: [][]models.Allocation{
				{alloc(1, true), alloc(2, false), alloc(3, false)},
				{alloc(1, false), alloc(2, false), alloc(3, true)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAllocationFixture(t)
			f.seed(t, alloc(1, true), alloc(2, false), alloc(3, false))

			releaseFail, releaseOK := make(chan struct{}), make(chan struct{})
			f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
				DoAndReturn(func(context.Context, string, int64) error {
					<-releaseFail
					return adapter.NewAPIError(http.StatusInternalServerError, "", "")
				})
			f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(3)).
				DoAndReturn(func(context.Context, string, int64) error {
					<-releaseOK
					return nil
				})
			calls := make([]any, 0, len(tt.fetches))
			for _, items := range tt.fetches {
				calls = append(calls, f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).Return(items, nil))
			}
			gomock.InOrder(calls...)

			failing := f.svc.SetPrimary(testServer, 2)
			succeeding := f.svc.SetPrimary(testServer, 3)

			if tt.failFirst {
				close(releaseFail)
				require.Error(t, failing.Wait(waitCtx(t)))
				close(releaseOK)
				require.NoError(t, succeeding.Wait(waitCtx(t)))
			} else {
				close(releaseOK)
				require.NoError(t, succeeding.Wait(waitCtx(t)))
				close(releaseFail)
				require.Error(t, failing.Wait(waitCtx(t)))
			}

			snap := f.svc.Read(testServer)
			assert.Equal(t, cache.StatusCommitted, snap.Status)
			assert.Equal(t, []int64{3}, primaryIDs(snap.Items))
		})
	}
}

func TestAllocationService_SetPrimary_CompensationSurvivesConcurrentTyping(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false), alloc(3, false))

	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		Return(adapter.NewAPIError(http.StatusInternalServerError, "", ""))
	fetches := 0
	f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).
		DoAndReturn(func(context.Context, string) ([]models.Allocation, error) {
			fetches++
			// the user keeps typing into another row while the list reloads
			assert.NoError(t, f.svc.UpdateNotes(testServer, 3, "typing"))
			return []models.Allocation{alloc(1, true), alloc(2, false), alloc(3, false)}, nil
		}).
		MinTimes(1)

	require.Error(t, f.svc.SetPrimary(testServer, 2).Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, []int64{1}, primaryIDs(snap.Items))
	assert.Equal(t, "typing", snap.Items[2].NotesText())
	assert.Equal(t, cache.StatusPending, snap.Status)
	assert.Positive(t, fetches)

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(3), "typing").Return(nil)
	f.clock.Advance(DefaultNotesDebounce)
	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))

	snap = f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Equal(t, []int64{1}, primaryIDs(snap.Items))
	assert.Equal(t, "typing", snap.Items[2].NotesText())
}

func TestAllocationService_SetPrimary_FailureRestoresServerState(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	gomock.InOrder(
		f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
			Return(adapter.NewAPIError(http.StatusInternalServerError, "", "")),
		f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).
			Return([]models.Allocation{alloc(1, true), alloc(2, false)}, nil),
	)

	m := f.svc.SetPrimary(testServer, 2)
	assert.Equal(t, []int64{2}, primaryIDs(f.svc.Read(testServer).Items))

	err := m.Wait(waitCtx(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrInternalServerError)

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Equal(t, []int64{1}, primaryIDs(snap.Items))

	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, models.FlashError, msgs[0].Type)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), msgs[0].Message)
}

func TestAllocationService_SetPrimary_PanelDetailIsShown(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		Return(adapter.NewAPIError(http.StatusBadRequest, "DisplayException", "This allocation cannot be modified."))
	f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).
		Return([]models.Allocation{alloc(1, true), alloc(2, false)}, nil)

	require.Error(t, f.svc.SetPrimary(testServer, 2).Wait(waitCtx(t)))

	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, "This allocation cannot be modified.", msgs[0].Message)
}

func TestAllocationService_SetPrimary_UnknownAllocation(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	err := f.svc.SetPrimary(testServer, 42).Wait(waitCtx(t))

	assert.ErrorIs(t, err, ErrAllocationNotFound)
	assert.Equal(t, cache.StatusCommitted, f.svc.Read(testServer).Status)
	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, app.MsgAllocationGone, msgs[0].Message)
}

func TestAllocationService_SetPrimary_ClearsPreviousMessage(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))
	f.flashes.AddError(TopicNetwork, "old failure")

	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).Return(nil)

	require.NoError(t, f.svc.SetPrimary(testServer, 2).Wait(waitCtx(t)))
	assert.Empty(t, f.flashes.Messages(TopicNetwork))
}

func TestAllocationService_SetPrimary_SurvivesClosedSubscription(t *testing.T) {
	f := newAllocationFixture(t)

	f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).
		Return([]models.Allocation{alloc(1, true), alloc(2, false)}, nil)

	viewCtx, closeView := context.WithCancel(context.Background())
	sub, err := f.svc.Subscribe(viewCtx, testServer)
	require.NoError(t, err)

	for snap := range sub.Updates() {
		if snap.Status == cache.StatusCommitted {
			break
		}
	}

	release := make(chan struct{})
	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		DoAndReturn(func(ctx context.Context, _ string, _ int64) error {
			<-release
			return ctx.Err()
		})

	m := f.svc.SetPrimary(testServer, 2)
	closeView()
	close(release)

	assert.NoError(t, m.Wait(waitCtx(t)))
}

// ── UpdateNotes ─────────────────────────────────────────────────────────────

func TestAllocationService_UpdateNotes_DebouncesToLatestValue(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(2), "abc").Return(nil).Times(1)

	for _, notes := range []string{"a", "ab", "abc"} {
		require.NoError(t, f.svc.UpdateNotes(testServer, 2, notes))
		snap := f.svc.Read(testServer)
		assert.Equal(t, cache.StatusPending, snap.Status)
		assert.Equal(t, notes, snap.Items[1].NotesText())
		f.clock.Advance(100 * time.Millisecond)
	}

	f.clock.Advance(DefaultNotesDebounce)
	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, "abc", snap.Items[1].NotesText())
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.False(t, f.svc.NotesSaving(testServer, 2))
	assert.False(t, f.svc.Saving(testServer))
}

func TestAllocationService_UpdateNotes_KeystrokeDuringSaveStaysPending(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	release := make(chan struct{})
	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), "lob").
		DoAndReturn(func(context.Context, string, int64, string) error {
			<-release
			return nil
		})

	require.NoError(t, f.svc.UpdateNotes(testServer, 1, "lob"))
	f.clock.Advance(DefaultNotesDebounce)
	require.Eventually(t, func() bool { return f.svc.Saving(testServer) }, time.Second, time.Millisecond)

	require.NoError(t, f.svc.UpdateNotes(testServer, 1, "lobby"))
	close(release)
	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusPending, snap.Status)
	assert.Equal(t, "lobby", snap.Items[0].NotesText())
	assert.False(t, f.svc.Saving(testServer))

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), "lobby").Return(nil)
	f.clock.Advance(DefaultNotesDebounce)
	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))
	assert.Equal(t, cache.StatusCommitted, f.svc.Read(testServer).Status)
}

func TestAllocationService_UpdateNotes_FailureKeepsTypedValue(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	// no GetAllocations expected: a failed notes save does not revalidate
	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), "mc").
		Return(adapter.NewAPIError(http.StatusBadRequest, "ValidationException", "The notes field is invalid."))

	require.NoError(t, f.svc.UpdateNotes(testServer, 1, "mc"))
	f.clock.Advance(DefaultNotesDebounce)
	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, "mc", snap.Items[0].NotesText())
	assert.Equal(t, cache.StatusPending, snap.Status)
	assert.False(t, f.svc.Saving(testServer))
	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, "The notes field is invalid.", msgs[0].Message)
}

func TestAllocationService_UpdateNotes_Rejected(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	err := f.svc.UpdateNotes(testServer, 1, strings.Repeat("x", 257))
	assert.ErrorIs(t, err, validators.ErrNotesTooLong)

	err = f.svc.UpdateNotes(testServer, 9, "lobby")
	assert.ErrorIs(t, err, ErrAllocationNotFound)

	err = f.svc.UpdateNotes("unknown-server", 1, "lobby")
	assert.ErrorIs(t, err, ErrAllocationNotFound)

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Nil(t, snap.Items[0].Notes)
	assert.False(t, f.svc.notes.Pending(notesField{Server: testServer, ID: 1}))
}

func TestAllocationService_UpdateNotes_SeparateFieldsSaveIndependently(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), "one").Return(nil)
	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(2), "two").Return(nil)

	require.NoError(t, f.svc.UpdateNotes(testServer, 1, "one"))
	require.NoError(t, f.svc.UpdateNotes(testServer, 2, "two"))
	f.clock.Advance(DefaultNotesDebounce)

	require.NoError(t, f.svc.notes.Wait(waitCtx(t)))
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestAllocationService_Delete_PrimaryRefused(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	err := f.svc.Delete(testServer, 1).Wait(waitCtx(t))

	assert.ErrorIs(t, err, ErrPrimaryAllocation)
	assert.Len(t, f.svc.Read(testServer).Items, 2)
	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, ErrPrimaryAllocation.Error(), msgs[0].Message)
}

func TestAllocationService_Delete_Success(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false), alloc(3, false))

	f.panel.EXPECT().DeleteAllocation(gomock.Any(), testServer, int64(2)).Return(nil)

	require.NoError(t, f.svc.Delete(testServer, 2).Wait(waitCtx(t)))

	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, int64(1), snap.Items[0].ID)
	assert.Equal(t, int64(3), snap.Items[1].ID)
}

func TestAllocationService_Delete_Failure(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	f.panel.EXPECT().DeleteAllocation(gomock.Any(), testServer, int64(2)).
		Return(adapter.NewAPIError(http.StatusNotFound, "NotFoundHttpException", ""))

	err := f.svc.Delete(testServer, 2).Wait(waitCtx(t))

	assert.ErrorIs(t, err, adapter.ErrNotFound)
	snap := f.svc.Read(testServer)
	assert.Equal(t, cache.StatusCommitted, snap.Status)
	assert.Len(t, snap.Items, 2)
	msgs := f.flashes.Messages(TopicNetwork)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Not Found", msgs[0].Message)
}

func TestAllocationService_Delete_Unknown(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	assert.ErrorIs(t, f.svc.Delete(testServer, 5).Wait(waitCtx(t)), ErrAllocationNotFound)
}

// ── Refresh / Close ─────────────────────────────────────────────────────────

func TestAllocationService_Refresh_Error(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	boom := errors.New("connection refused")
	f.panel.EXPECT().GetAllocations(gomock.Any(), testServer).Return(nil, boom)

	err := f.svc.Refresh(context.Background(), testServer)

	assert.ErrorIs(t, err, boom)
	snap := f.svc.Read(testServer)
	assert.Len(t, snap.Items, 1)
	assert.ErrorIs(t, snap.Err, boom)
}

func TestAllocationService_Close_FlushesPendingNotes(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), "bye").Return(nil)

	require.NoError(t, f.svc.UpdateNotes(testServer, 1, "bye"))
	require.NoError(t, f.svc.Close(waitCtx(t)))

	assert.ErrorIs(t, f.svc.UpdateNotes(testServer, 1, "late"), ErrServiceClosed)
	assert.ErrorIs(t, f.svc.SetPrimary(testServer, 1).Wait(waitCtx(t)), ErrServiceClosed)
}

func TestAllocationService_Close_RacingKeystrokesArmNoTimer(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true))

	f.panel.EXPECT().SetAllocationNotes(gomock.Any(), testServer, int64(1), gomock.Any()).Return(nil).AnyTimes()

	stop := make(chan struct{})
	typed := make(chan struct{})
	go func() {
		defer close(typed)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if err := f.svc.UpdateNotes(testServer, 1, strings.Repeat("x", i%200)); errors.Is(err, ErrServiceClosed) {
				return
			}
		}
	}()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, f.svc.Close(waitCtx(t)))
	close(stop)
	<-typed

	assert.False(t, f.svc.notes.Pending(notesField{Server: testServer, ID: 1}))
	assert.Empty(t, f.flashes.Messages(TopicNetwork))
}

func TestAllocationService_Close_WaitsForMutations(t *testing.T) {
	f := newAllocationFixture(t)
	f.seed(t, alloc(1, true), alloc(2, false))

	release := make(chan struct{})
	f.panel.EXPECT().SetPrimaryAllocation(gomock.Any(), testServer, int64(2)).
		DoAndReturn(func(ctx context.Context, _ string, _ int64) error {
			<-release
			return nil
		})

	m := f.svc.SetPrimary(testServer, 2)

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.svc.Close(short), context.DeadlineExceeded)

	close(release)
	require.NoError(t, f.svc.Close(waitCtx(t)))
	assert.NoError(t, m.Err())
}
