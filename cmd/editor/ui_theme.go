package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var listTitleColor = color.RGBA{235, 235, 235, 255}

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.RGBA{220, 220, 220, 255},
				Selected:            color.White,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 96},
				SelectingBackground: color.RGBA{60, 80, 120, 255},
				SelectedBackground:  color.RGBA{50, 90, 160, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{48, 48, 52, 255}),
				Mask: solidNineSlice(color.RGBA{48, 48, 52, 255}),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{32, 32, 36, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{70, 70, 76, 255}),
				Hover:   solidNineSlice(color.RGBA{90, 90, 96, 255}),
				Pressed: solidNineSlice(color.RGBA{55, 55, 60, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.White,
			},
		},
	}
}
