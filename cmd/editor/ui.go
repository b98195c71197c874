package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// buildUI assembles the left layer panel and wires its callbacks into
// the editor.
func (e *Editor) buildUI() {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	e.layerPanel = NewLayerPanel()
	e.layerPanel.onSelect = func(idx int) {
		e.store.SelectIndex(idx)
	}
	e.layerPanel.onToggleVisible = func(idx int) {
		if idx >= 0 && idx < len(e.store.Layers) {
			e.pushUndo()
			e.store.ToggleVisible(e.store.Layers[idx].ID)
			e.markStale()
		}
	}

	leftPanel := e.buildLeftPanel(ui.PrimaryTheme, &fontFace)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(leftPanel)

	ui.Container = root
	e.ui = ui
	e.syncLayerPanel()
}

func (e *Editor) buildLeftPanel(theme *widget.Theme, fontFace *text.Face) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelW, 0),
		),
	)

	title := widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, &widget.LabelColor{Idle: listTitleColor}),
	)
	panel.AddChild(title)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(en any) string {
			entry, ok := en.(LayerEntry)
			if !ok {
				return ""
			}
			marker := " "
			if !entry.Visible {
				marker = "-"
			}
			return fmt.Sprintf("%s %d. %s", marker, entry.Index+1, entry.Name)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || e.layerPanel.suppressEvents {
				return
			}
			if e.layerPanel.onSelect != nil {
				e.layerPanel.onSelect(entry.Index)
			}
		}),
		widget.ListOpts.ContainerOpts(
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true, MaxHeight: 420}),
				widget.WidgetOpts.MinSize(leftPanelW-16, 420),
			),
		),
	)
	panel.AddChild(layerList)
	e.layerPanel.list = layerList

	addButtonRow(panel, theme, fontFace, []buttonSpec{
		{"New", e.addLayer},
		{"Del", func() {
			if l, ok := e.store.Selected(); ok {
				e.pushUndo()
				e.store.Remove(l.ID)
				e.markStale()
			}
		}},
		{"Show", func() {
			if e.layerPanel.onToggleVisible != nil {
				e.layerPanel.onToggleVisible(e.store.SelectedIndex())
			}
		}},
	})
	addButtonRow(panel, theme, fontFace, []buttonSpec{
		{"Up", func() { e.moveSelected(1) }},
		{"Down", func() { e.moveSelected(-1) }},
	})
	addButtonRow(panel, theme, fontFace, []buttonSpec{
		{"Save", e.save},
		{"Copy URL", e.copyServiceParams},
	})

	return panel
}

type buttonSpec struct {
	label   string
	clicked func()
}

func addButtonRow(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, specs []buttonSpec) {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, spec := range specs {
		clicked := spec.clicked
		row.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(spec.label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if clicked != nil {
					clicked()
				}
			}),
		))
	}
	parent.AddChild(row)
}

func (e *Editor) moveSelected(delta int) {
	if l, ok := e.store.Selected(); ok {
		e.pushUndo()
		if e.store.MoveLayer(l.ID, delta) {
			e.markStale()
		}
	}
}

// syncLayerPanel refreshes the list from the store.
func (e *Editor) syncLayerPanel() {
	if e.layerPanel == nil {
		return
	}
	names := make([]string, len(e.store.Layers))
	visible := make([]bool, len(e.store.Layers))
	for i := range e.store.Layers {
		names[i] = e.store.Layers[i].Name
		if names[i] == "" {
			names[i] = e.store.Layers[i].ID
		}
		visible[i] = e.store.Layers[i].Visible
	}
	e.layerPanel.SetLayers(names, visible)
	e.layerPanel.SetSelected(e.store.SelectedIndex())
}
