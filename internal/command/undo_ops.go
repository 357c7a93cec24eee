package command

import "github.com/dshills/edcore/internal/cursor"

func execUndo(v View, c Undo) (Events, error) {
	res, err := v.Buffer().Undo()
	if err != nil {
		return Events{}, err
	}
	if sels, ok := res.SelectionsBefore.(*cursor.Set); ok && sels != nil {
		v.SetSelections(sels.Clone())
	}
	return documentEvents(res.Delta), nil
}

func execRedo(v View, c Redo) (Events, error) {
	res, err := v.Buffer().Redo()
	if err != nil {
		return Events{}, err
	}
	if sels, ok := res.SelectionsAfter.(*cursor.Set); ok && sels != nil {
		v.SetSelections(sels.Clone())
	}
	return documentEvents(res.Delta), nil
}

func execCommitUndoGroup(v View, c CommitUndoGroup) (Events, error) {
	v.Buffer().CommitUndoGroup()
	return emptyEvents(), nil
}
