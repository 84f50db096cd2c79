package overlay

import (
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/musicstrip/scenes"
)

// EndCard shows the closing navigation once the strip has been scrolled
// through, and the credits panel behind it. Implements system.EndCardView.
type EndCard struct {
	credits scenes.CreditsSpec
	onHome  func()

	visible      bool
	creditsShown bool

	width, height int
	ui            *ebitenui.UI
	nav           *widget.Container
	panel         *widget.Container
}

func NewEndCard(credits scenes.CreditsSpec, onHome func(), width, height int) *EndCard {
	return &EndCard{
		credits: credits,
		onHome:  onHome,
		width:   width,
		height:  height,
	}
}

func (c *EndCard) SetEndCardVisible(visible bool) {
	c.visible = visible
	if !visible {
		c.creditsShown = false
	}
	c.refresh()
}

func (c *EndCard) Visible() bool {
	return c.visible
}

func (c *EndCard) CreditsShown() bool {
	return c.creditsShown
}

func (c *EndCard) ShowCredits() {
	if !c.visible {
		return
	}
	c.creditsShown = true
	c.refresh()
}

func (c *EndCard) HideCredits() {
	c.creditsShown = false
	c.refresh()
}

func (c *EndCard) Home() {
	c.creditsShown = false
	c.refresh()
	if c.onHome != nil {
		c.onHome()
	}
}

// CreditLines flattens the credits into display lines.
func (c *EndCard) CreditLines() []string {
	var lines []string
	for _, s := range []string{c.credits.Title, c.credits.Subtitle, c.credits.Heading} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	for _, p := range c.credits.People {
		line := p.Name
		if p.Role != "" {
			line += " - " + p.Role
		}
		if p.Note != "" {
			line += " (" + p.Note + ")"
		}
		lines = append(lines, line)
	}
	return append(lines, c.credits.Lines...)
}

func (c *EndCard) Update() {
	if !c.visible {
		return
	}
	if c.creditsShown && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.HideCredits()
		return
	}
	c.ensureUI().Update()
}

func (c *EndCard) Draw(screen *ebiten.Image) {
	if !c.visible {
		return
	}
	c.ensureUI().Draw(screen)
}

func (c *EndCard) ensureUI() *ebitenui.UI {
	if c.ui != nil {
		return c.ui
	}
	t := newTheme()

	c.nav = t.row()
	c.nav.AddChild(t.newButton("Home", c.Home))
	c.nav.AddChild(t.newButton("Credits", c.ShowCredits))

	c.panel = t.column(c.width/2, c.height*2/3)
	c.panel.AddChild(t.text(strings.Join(c.CreditLines(), "\n"), white, float64(c.width)/2))
	c.panel.AddChild(t.newButton("Back", c.HideCredits))

	bottom := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			StretchHorizontal: true,
			StretchVertical:   true,
		})),
	)
	c.nav.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}
	bottom.AddChild(c.nav)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bottom)
	root.AddChild(c.panel)

	c.ui = &ebitenui.UI{Container: root}
	c.refresh()
	return c.ui
}

func (c *EndCard) refresh() {
	if c.ui == nil {
		return
	}
	c.nav.GetWidget().Visibility = visibility(!c.creditsShown)
	c.panel.GetWidget().Visibility = visibility(c.creditsShown)
}

func visibility(shown bool) widget.Visibility {
	if shown {
		return widget.Visibility_Show
	}
	return widget.Visibility_Hide
}
