package workspace

import (
	"github.com/dshills/edcore/internal/command"
	"github.com/dshills/edcore/internal/kernel"
)

// BufferEdits groups the raw character-range edits a caller wants applied
// to one buffer (e.g. every replacement a rename-across-files processor
// computed for that file).
type BufferEdits struct {
	BufferID kernel.BufferID
	Edits    []kernel.EditSpec
}

// ApplyTextEditsAllBuffers applies each BufferEdits group to its buffer as
// a single forced undo group ([EXPANSION] supplemental feature
// paralleling SearchAllOpenBuffers: a workspace-wide rename or
// find-and-replace-all needs to land every buffer's edits as one undo
// step per buffer, not one step per individual replacement). Buffers with
// no registered views still apply normally; the resulting DocumentModified
// notification is simply broadcast to zero subscribers.
func (w *Workspace) ApplyTextEditsAllBuffers(groups []BufferEdits) error {
	for _, g := range groups {
		buf := w.Buffer(g.BufferID)
		if buf == nil {
			return &kernel.Error{Kind: kernel.OutOfRange, Message: "unknown buffer id"}
		}
		if len(g.Edits) == 0 {
			continue
		}
		d, err := buf.ApplyEdits(g.Edits, nil, nil, true)
		if err != nil {
			return err
		}
		w.mu.RLock()
		views := append([]ViewID(nil), w.viewsByBuffer[g.BufferID]...)
		w.mu.RUnlock()
		shiftSiblingSelections(w, views, 0, d.Edits)
		w.broadcastDocumentModified(g.BufferID, d)
	}
	return nil
}

func (w *Workspace) broadcastDocumentModified(bufID kernel.BufferID, d kernel.TextDelta) {
	start, end, has := 0, 0, false
	for i, e := range d.Edits {
		ne := e.NewRangeEnd()
		if i == 0 {
			start, end, has = e.RangeStart, ne, true
			continue
		}
		if e.RangeStart < start {
			start = e.RangeStart
		}
		if ne > end {
			end = ne
		}
	}

	sc := command.StateChange{
		OldVersion: d.BeforeVersion, NewVersion: d.AfterVersion,
		ChangeType: command.DocumentModified, AffectedStart: start, AffectedEnd: end, HasAffected: has,
	}

	w.mu.RLock()
	subs := append([]subscriber(nil), w.subsByBuffer[bufID]...)
	w.mu.RUnlock()
	w.dispatch.dispatch(subs, sc)
}
