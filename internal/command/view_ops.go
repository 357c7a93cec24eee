package command

import (
	"github.com/dshills/edcore/internal/kernel"
	"github.com/dshills/edcore/internal/layout"
)

// Configurable is the extra surface a View must implement to accept View
// commands (spec §4.3 "View"): per-view layout knobs that internal/command
// has no business computing itself (that's internal/layout's job, driven
// by internal/workspace). Folds live on the buffer, not the view, so
// ToggleUserFold bypasses this interface entirely and goes straight to
// v.Buffer().Folds.
type Configurable interface {
	SetViewportWidth(w int)
	SetWrapMode(mode layout.WrapMode)
	SetWrapIndent(mode layout.IndentMode, fixedCells int)
	SetTabWidth(w int)
	SetScrollTop(top int)
}

func localViewportEvent() Events {
	return Events{Local: []StateChange{{ChangeType: ViewportChanged}}}
}

// execViewCommand dispatches every View-category command except
// ToggleUserFold (handled separately below since it mutates shared,
// per-buffer fold state rather than per-view layout state).
func execViewCommand(v View, cmd Command) (Events, error) {
	if fold, ok := cmd.(ToggleUserFold); ok {
		return execToggleUserFold(v, fold)
	}

	cv, ok := v.(Configurable)
	if !ok {
		return Events{}, &kernel.Error{Kind: kernel.InvalidCommand, Message: "view does not support view commands"}
	}
	switch c := cmd.(type) {
	case SetViewportWidth:
		cv.SetViewportWidth(c.Width)
	case SetWrapMode:
		cv.SetWrapMode(c.Mode)
	case SetWrapIndent:
		cv.SetWrapIndent(c.Indent, c.FixedCells)
	case SetTabWidth:
		cv.SetTabWidth(c.Width)
	case SetScroll:
		cv.SetScrollTop(c.Top)
	default:
		return Events{}, &kernel.Error{Kind: kernel.InvalidCommand, Message: "unrecognized view command"}
	}
	return localViewportEvent(), nil
}

// execToggleUserFold toggles (or creates) a user fold on the buffer the
// view is showing; since folds are shared document state, every view of
// the buffer must be told, so the resulting event is broadcast.
func execToggleUserFold(v View, c ToggleUserFold) (Events, error) {
	buf := v.Buffer()
	if !buf.Folds.ToggleUserFold(c.StartLine) {
		buf.Folds.AddUserFold(c.StartLine, c.EndLine, true, c.Placeholder)
	}
	return Events{Broadcast: []StateChange{{ChangeType: FoldingChanged}}}, nil
}
