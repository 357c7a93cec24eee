package command

func broadcastStyles() Events {
	return Events{Broadcast: []StateChange{{ChangeType: StylesChanged}}}
}

func execApplyStyleLayer(v View, c ApplyStyleLayer) (Events, error) {
	v.Buffer().Styles.ReplaceLayer(c.Layer, c.Intervals)
	return broadcastStyles(), nil
}

func execClearStyleLayer(v View, c ClearStyleLayer) (Events, error) {
	v.Buffer().Styles.ClearLayer(c.Layer)
	return broadcastStyles(), nil
}

func execReplaceDerivedFolds(v View, c ReplaceDerivedFolds) (Events, error) {
	v.Buffer().Folds.ReplaceDerived(c.Regions)
	return Events{Broadcast: []StateChange{{ChangeType: FoldingChanged}}}, nil
}

func execReplaceDecorationLayer(v View, c ReplaceDecorationLayer) (Events, error) {
	v.Buffer().Decorations.ReplaceLayer(c.Layer, c.Decorations)
	return Events{Broadcast: []StateChange{{ChangeType: DecorationsChanged}}}, nil
}

func execClearDecorationLayer(v View, c ClearDecorationLayer) (Events, error) {
	v.Buffer().Decorations.ClearLayer(c.Layer)
	return Events{Broadcast: []StateChange{{ChangeType: DecorationsChanged}}}, nil
}

func execReplaceDiagnostics(v View, c ReplaceDiagnostics) (Events, error) {
	v.Buffer().Diagnostics.Replace(c.Diagnostics)
	return Events{Broadcast: []StateChange{{ChangeType: DiagnosticsChanged}}}, nil
}

func execClearDiagnostics(v View, c ClearDiagnostics) (Events, error) {
	v.Buffer().Diagnostics.Clear()
	return Events{Broadcast: []StateChange{{ChangeType: DiagnosticsChanged}}}, nil
}
