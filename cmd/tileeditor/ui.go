package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const toolbarHeight = 48

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(color.RGBA{40, 40, 40, 255}),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.Black,
				Hover:    color.Black,
				Pressed:  color.RGBA{0, 0, 200, 255},
				Disabled: color.Gray{Y: 128},
			},
		},
	}
}

// ToolbarActions are the callbacks behind the toolbar buttons.
type ToolbarActions struct {
	ToggleGrid func() bool
	ZoomIn     func()
	ZoomOut    func()
	NextLayer  func() string
	Reload     func()
	Clear      func()
	Copy       func()
}

// EditorUI holds the widgets the editor updates after construction.
type EditorUI struct {
	UI       *ebitenui.UI
	status   *widget.Text
	gridBtn  *widget.Button
	layerBtn *widget.Button
}

// SetStatus replaces the status line.
func (u *EditorUI) SetStatus(s string) {
	if u == nil || u.status == nil || u.status.Label == s {
		return
	}
	u.status.Label = s
}

// SetGrid updates the grid toggle label.
func (u *EditorUI) SetGrid(on bool) {
	setButtonLabel(u.gridBtn, gridLabel(on))
}

// SetLayer updates the layer button label.
func (u *EditorUI) SetLayer(name string) {
	setButtonLabel(u.layerBtn, "Layer: "+name)
}

func setButtonLabel(btn *widget.Button, label string) {
	if btn == nil {
		return
	}
	if t := btn.Text(); t != nil {
		t.Label = label
	}
}

func gridLabel(on bool) string {
	if on {
		return "Grid: On"
	}
	return "Grid: Off"
}

func BuildEditorUI(actions ToolbarActions, gridOn bool, layer string) *EditorUI {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}

	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newEditorTheme(&fontFace)
	theme := ui.PrimaryTheme
	eui := &EditorUI{UI: ui}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, toolbarHeight),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{220, 220, 240, 255})),
	)

	button := func(label string, onClick func()) *widget.Button {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, &fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(72, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
		toolbar.AddChild(btn)
		return btn
	}

	eui.gridBtn = button(gridLabel(gridOn), func() {
		if actions.ToggleGrid != nil {
			eui.SetGrid(actions.ToggleGrid())
		}
	})
	button("Zoom +", actions.ZoomIn)
	button("Zoom -", actions.ZoomOut)
	eui.layerBtn = button("Layer: "+layer, func() {
		if actions.NextLayer != nil {
			eui.SetLayer(actions.NextLayer())
		}
	})
	button("Reload", actions.Reload)
	button("Clear", actions.Clear)
	button("Copy", actions.Copy)

	eui.status = widget.NewText(
		widget.TextOpts.Text("", &fontFace, color.White),
	)
	statusBar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 230})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
		)),
	)
	statusBar.AddChild(eui.status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	toolbar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
	}
	statusBar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
		StretchHorizontal:  true,
	}
	root.AddChild(toolbar)
	root.AddChild(statusBar)

	ui.Container = root
	return eui
}
