package main

import (
	"image/color"

	"github.com/milk9111/dustbunnies/common"
	"github.com/milk9111/dustbunnies/settings"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewPauseUI builds the pause menu: Resume, look sensitivity and Y inversion.
// Changes are saved when the game resumes.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	sensitivity := widget.NewText(
		widget.TextOpts.Text(g.sensitivityLabel(), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	resumeBtn := button("Resume", func() {
		g.setPaused(false)
	})
	slowerBtn := button("Sensitivity -", func() {
		g.settings.AdjustSensitivity(-settings.SensitivityStep)
		sensitivity.Label = g.sensitivityLabel()
	})
	fasterBtn := button("Sensitivity +", func() {
		g.settings.AdjustSensitivity(settings.SensitivityStep)
		sensitivity.Label = g.sensitivityLabel()
	})

	invertLabel := func() string {
		if g.settings.Look().InvertY {
			return "Invert Y: on"
		}
		return "Invert Y: off"
	}
	invert := widget.NewText(
		widget.TextOpts.Text(invertLabel(), &face, white),
		widget.TextOpts.WidgetOpts(centered),
	)
	invertBtn := button("Toggle Invert Y", func() {
		g.settings.SetInvertY(!g.settings.Look().InvertY)
		invert.Label = invertLabel()
	})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(sensitivity)
	panel.AddChild(slowerBtn)
	panel.AddChild(fasterBtn)
	panel.AddChild(invert)
	panel.AddChild(invertBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
