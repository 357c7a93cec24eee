package workspace

import (
	"sync"

	"github.com/dshills/edcore/internal/command"
	"github.com/dshills/edcore/internal/cursor"
	"github.com/dshills/edcore/internal/delta"
	"github.com/dshills/edcore/internal/kernel"
)

// Workspace owns the buffer and view arenas and is the only place
// mutation of those arenas (as opposed to buffer content) is locked: its
// RWMutex guards the id->object maps only, so that two Execute calls
// against different buffers never contend on a workspace-wide lock (spec
// §4.7 "the workspace carries its own RWMutex guarding the buffer/view id
// maps, never buffer content" — mirrors the teacher's registry-vs-content
// lock separation in internal/engine).
type Workspace struct {
	mu sync.RWMutex

	buffers map[kernel.BufferID]*kernel.Buffer
	views   map[ViewID]*View

	viewsByBuffer map[kernel.BufferID][]ViewID
	subsByBuffer  map[kernel.BufferID][]subscriber
	subsByView    map[ViewID][]subscriber

	dispatch dispatcher
}

// New returns an empty Workspace.
func New() *Workspace {
	return &Workspace{
		buffers:       make(map[kernel.BufferID]*kernel.Buffer),
		views:         make(map[ViewID]*View),
		viewsByBuffer: make(map[kernel.BufferID][]ViewID),
		subsByBuffer:  make(map[kernel.BufferID][]subscriber),
		subsByView:    make(map[ViewID][]subscriber),
	}
}

// OpenBuffer registers buf (already constructed via kernel.New /
// kernel.NewFromString) and returns its id.
func (w *Workspace) OpenBuffer(buf *kernel.Buffer) kernel.BufferID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffers[buf.ID()] = buf
	return buf.ID()
}

// CloseBuffer drops the buffer and every view still showing it.
func (w *Workspace) CloseBuffer(id kernel.BufferID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, vid := range w.viewsByBuffer[id] {
		delete(w.views, vid)
		delete(w.subsByView, vid)
	}
	delete(w.viewsByBuffer, id)
	delete(w.subsByBuffer, id)
	delete(w.buffers, id)
}

// Buffer returns the buffer registered under id, or nil.
func (w *Workspace) Buffer(id kernel.BufferID) *kernel.Buffer {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.buffers[id]
}

// Buffers returns every open buffer's id.
func (w *Workspace) Buffers() []kernel.BufferID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]kernel.BufferID, 0, len(w.buffers))
	for id := range w.buffers {
		out = append(out, id)
	}
	return out
}

// NewView opens a new view over bufID and returns it, or a *kernel.Error
// if bufID is not open.
func (w *Workspace) NewView(bufID kernel.BufferID) (*View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	buf, ok := w.buffers[bufID]
	if !ok {
		return nil, &kernel.Error{Kind: kernel.OutOfRange, Message: "unknown buffer id"}
	}
	v := newView(NewViewID(), buf)
	w.views[v.id] = v
	w.viewsByBuffer[bufID] = append(w.viewsByBuffer[bufID], v.id)
	return v, nil
}

// View returns the view registered under id, or nil.
func (w *Workspace) View(id ViewID) *View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.views[id]
}

// ViewsOf returns the ids of every view currently showing bufID.
func (w *Workspace) ViewsOf(bufID kernel.BufferID) []ViewID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]ViewID, len(w.viewsByBuffer[bufID]))
	copy(out, w.viewsByBuffer[bufID])
	return out
}

// CloseView removes a single view without touching its buffer or any
// other view of it.
func (w *Workspace) CloseView(id ViewID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	v, ok := w.views[id]
	if !ok {
		return
	}
	delete(w.views, id)
	delete(w.subsByView, id)
	bufID := v.buf.ID()
	ids := w.viewsByBuffer[bufID]
	for i, vid := range ids {
		if vid == id {
			w.viewsByBuffer[bufID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

// SubscribeBuffer registers fn to receive every StateChange broadcast to
// any view of bufID (spec §6 "subscribe(callback) -> SubscriptionId").
func (w *Workspace) SubscribeBuffer(bufID kernel.BufferID, fn Subscription) subscriptionID {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := newSubscriptionID()
	w.subsByBuffer[bufID] = append(w.subsByBuffer[bufID], subscriber{id: id, fn: fn})
	return id
}

// SubscribeView registers fn to receive the local StateChanges one
// specific view's commands produce (cursor/view notifications that never
// reach other views of the same buffer).
func (w *Workspace) SubscribeView(viewID ViewID, fn Subscription) subscriptionID {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := newSubscriptionID()
	w.subsByView[viewID] = append(w.subsByView[viewID], subscriber{id: id, fn: fn})
	return id
}

// Unsubscribe removes a subscription registered by either Subscribe
// method, wherever it was stored.
func (w *Workspace) Unsubscribe(id subscriptionID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for buf, subs := range w.subsByBuffer {
		w.subsByBuffer[buf] = removeSub(subs, id)
	}
	for vid, subs := range w.subsByView {
		w.subsByView[vid] = removeSub(subs, id)
	}
}

func removeSub(subs []subscriber, id subscriptionID) []subscriber {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// Execute runs cmd against the view registered under viewID and fans the
// resulting Events out to subscribers: Broadcast notifications go to
// every subscriber of the view's buffer, Local notifications go only to
// subscribers of viewID itself (spec §4.7 "Edit commands notify every
// view of the buffer; Cursor/View commands notify only the originating
// view").
func (w *Workspace) Execute(viewID ViewID, cmd command.Command) (command.Events, error) {
	v := w.View(viewID)
	if v == nil {
		return command.Events{}, &kernel.Error{Kind: kernel.OutOfRange, Message: "unknown view id"}
	}

	events, err := command.Execute(v, cmd)
	if err != nil {
		return command.Events{}, err
	}

	bufID := v.Buffer().ID()
	w.mu.RLock()
	bufSubs := append([]subscriber(nil), w.subsByBuffer[bufID]...)
	viewSubs := append([]subscriber(nil), w.subsByView[viewID]...)
	siblings := append([]ViewID(nil), w.viewsByBuffer[bufID]...)
	w.mu.RUnlock()

	if len(events.Edits) > 0 {
		shiftSiblingSelections(w, siblings, viewID, events.Edits)
	}

	for _, sc := range events.Broadcast {
		w.dispatch.dispatch(bufSubs, sc)
	}
	for _, sc := range events.Local {
		w.dispatch.dispatch(viewSubs, sc)
	}
	return events, nil
}

// shiftSiblingSelections replays edits (in their descending
// pre-document-offset application order) against every view of the edited
// buffer other than origin, so each sibling's selection set tracks the
// edit exactly as the originating view's own (already-transformed)
// selections do (spec §4.7 step 3: "Each view also shifts its own
// selections per §4.2").
func shiftSiblingSelections(w *Workspace, viewIDs []ViewID, origin ViewID, edits []delta.TextEditDelta) {
	cursorEdits := make([]cursor.Edit, len(edits))
	for i, e := range edits {
		cursorEdits[i] = cursor.Edit{RangeStart: e.RangeStart, RangeEnd: e.RangeEnd, InsertedText: e.InsertedText}
	}
	for _, vid := range viewIDs {
		if vid == origin {
			continue
		}
		sv := w.View(vid)
		if sv == nil {
			continue
		}
		sels := sv.Selections()
		cursor.TransformSetMulti(sels, cursorEdits)
		sv.SetSelections(sels)
	}
}

// DispatchStats reports cumulative subscriber-dispatch counters (spec
// §9's observability note, grounded in the teacher's
// SyncDispatcher.Stats).
func (w *Workspace) DispatchStats() (dispatched, panicked uint64) {
	s := w.dispatch.stats()
	return s.Dispatched, s.Panicked
}
