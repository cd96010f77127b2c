package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

var (
	textColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	heartColor = color.NRGBA{R: 0xe0, G: 0x40, B: 0x50, A: 0xff}
)

// HUD mirrors the world's HUD component into ebitenui widgets. It is built
// once and survives restarts.
type HUD struct {
	ui *ebitenui.UI

	main     *widget.Container
	lives    *widget.Text
	hearts   *widget.Text
	dialogue *widget.Text
	win      *widget.Container
	gameOver *widget.Container
}

// NewHUD builds the overlay. restart runs when an end screen button is
// clicked.
func NewHUD(restart func()) *HUD {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	h := &HUD{}

	h.lives = widget.NewText(widget.TextOpts.Text("", &face, textColor))
	h.hearts = widget.NewText(widget.TextOpts.Text("", &face, heartColor))
	h.main = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	h.main.AddChild(h.lives)
	h.main.AddChild(h.hearts)

	h.dialogue = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
		})),
	)

	h.win = endPanel(face, "You all made it out.", "Play again", restart)
	h.gameOver = endPanel(face, "Game over.", "Try again", restart)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(h.main)
	root.AddChild(h.dialogue)
	root.AddChild(h.win)
	root.AddChild(h.gameOver)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func endPanel(face ebtext.Face, title, button string, clicked func()) *widget.Container {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	label := widget.NewText(
		widget.TextOpts.Text(title, &face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	btn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text(button, &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if clicked != nil {
				clicked()
			}
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(label)
	panel.AddChild(btn)
	panel.GetWidget().Visibility = widget.Visibility_Hide
	return panel
}

// Update copies the HUD component into the widgets and runs ebitenui input.
func (h *HUD) Update(w *ecs.World) {
	if ent, ok := ecs.First(w, component.HUDComponent.Kind()); ok {
		h.sync(ecs.MustGet(w, ent, component.HUDComponent.Kind()))
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func (h *HUD) sync(hud *component.HUD) {
	setVisible(h.main, hud.Canvases[component.CanvasMain])
	setVisible(h.win, hud.Canvases[component.CanvasWin])
	setVisible(h.gameOver, hud.Canvases[component.CanvasGameOver])

	h.lives.Label = livesLabel(hud.Lives)
	h.hearts.Label = ""
	if hud.Canvases[component.CanvasHearts] {
		for i, visible := range hud.PodVisible {
			if visible {
				h.hearts.Label = heartsLabel(hud.Hearts[i])
				break
			}
		}
	}
	h.dialogue.Label = hud.Dialogue
}

func livesLabel(lives [component.PodCount]int) string {
	parts := make([]string, 0, len(lives))
	for i, n := range lives {
		parts = append(parts, fmt.Sprintf("%s %d", component.Role(i), n))
	}
	return "Lives  " + strings.Join(parts, "   ")
}

func heartsLabel(n int) string {
	if n <= 0 {
		return "Health  -"
	}
	return "Health  " + strings.TrimSpace(strings.Repeat("<3 ", n))
}

func setVisible(c *widget.Container, visible bool) {
	want := widget.Visibility_Hide
	if visible {
		want = widget.Visibility_Show
	}
	if c.GetWidget().Visibility == want {
		return
	}
	c.GetWidget().Visibility = want
	c.RequestRelayout()
}
