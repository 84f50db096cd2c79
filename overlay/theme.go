package overlay

import (
	"image/color"

	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mutedWhite = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
)

// theme is the shared look of every overlay surface. Faces come from the
// built-in basic font so no font assets are needed.
type theme struct {
	face     ebtext.Face
	backdrop *imageui.NineSlice
	panel    *imageui.NineSlice
	button   *widget.ButtonImage
	label    *widget.ButtonTextColor
}

func newTheme() *theme {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})
	return &theme{
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		backdrop: imageui.NewNineSliceColor(color.NRGBA{A: 200}),
		panel:    imageui.NewNineSliceColor(color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 235}),
		button:   &widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg},
		label:    &widget.ButtonTextColor{Idle: white},
	}
}

func (t *theme) text(label string, c color.Color, maxWidth float64) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &t.face, c),
		widget.TextOpts.MaxWidth(maxWidth),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (t *theme) newButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(t.button),
		widget.ButtonOpts.Text(label, &t.face, t.label),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (t *theme) column(minW, minH int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(t.panel),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func (t *theme) row() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(12),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}
