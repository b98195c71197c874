package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	Index   int
	Name    string
	Visible bool
}

// LayerPanel holds the list widget and small helpers used by the
// editor UI. The list shows layers top of the stack first.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onSelect        func(idx int)
	onToggleVisible func(idx int)

	// suppressEvents, when true, causes the selection handler to avoid
	// interpreting programmatic selections as user clicks.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

// SetLayers repopulates the list. names and visibility run bottom to
// top, matching draw order; the list displays them reversed.
func (lp *LayerPanel) SetLayers(names []string, visible []bool) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		entries = append(entries, LayerEntry{Index: i, Name: names[i], Visible: visible[i]})
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

// SetSelected marks the layer at stack index idx, or clears for -1.
func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	defer func() { lp.suppressEvents = false }()
	for _, e := range lp.entries {
		if entry, ok := e.(LayerEntry); ok && entry.Index == idx {
			lp.list.SetSelectedEntry(e)
			return
		}
	}
}
