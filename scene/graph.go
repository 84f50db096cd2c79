// Package scene is the drawable 2.5D scene graph. It implements
// system.SceneGraph and system.TargetResolver.
package scene

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/musicstrip/scenes"
	"github.com/milk9111/musicstrip/tween"
	"go.uber.org/zap"
)

const (
	maxVideoIndex = 8

	visibilityFade = 30 * time.Millisecond
	pulseScale     = 1.02
	pulseDuration  = 6 * time.Second
	restoreScale   = 2500 * time.Millisecond
	hiddenAlpha    = 0.01
)

var (
	videoNodeName = regexp.MustCompile(`^P0?(\d+)$`)
	hiddenMarkers = []string{"floor", "ground", "plane", "base"}
)

// Node is one drawable rectangle in world space.
type Node struct {
	Name       string
	Parent     string
	X, Y       float64
	Width      float64
	Height     float64
	Layer      int
	Label      string
	VideoIndex int

	base       color.NRGBA
	saturation float64
	hidden     bool
	visible    bool
	order      int
}

// Hidden reports nodes removed from the scene at build.
func (n *Node) Hidden() bool {
	return n.hidden
}

func (n *Node) Visible() bool {
	return n.visible && !n.hidden
}

func (n *Node) Saturation() float64 {
	return n.saturation
}

func (n *Node) Color() color.NRGBA {
	return saturate(n.base, n.saturation)
}

type Graph struct {
	nodes  map[string]*Node
	order  []*Node
	space  *cp.Space
	tweens *tween.Engine
	logger *zap.Logger
}

// NewGraph builds nodes from mesh specs. Nodes whose names mark them as
// floor geometry are hidden for good; video targets are tagged from an
// explicit index or from a P<n> name.
func NewGraph(meshes []scenes.MeshSpec, tweens *tween.Engine, logger *zap.Logger) (*Graph, error) {
	if tweens == nil {
		tweens = tween.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Graph{
		nodes:  make(map[string]*Node, len(meshes)),
		space:  cp.NewSpace(),
		tweens: tweens,
		logger: logger,
	}

	for i, m := range meshes {
		if m.Name == "" {
			return nil, fmt.Errorf("scene: mesh #%d has no name", i)
		}
		if _, dup := g.nodes[m.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate mesh %q", m.Name)
		}
		base, err := scenes.ParseColor(m.Color, "gray")
		if err != nil {
			return nil, fmt.Errorf("scene: mesh %q: %w", m.Name, err)
		}
		n := &Node{
			Name:       m.Name,
			Parent:     m.Parent,
			X:          m.X,
			Y:          m.Y,
			Width:      m.Width,
			Height:     m.Height,
			Layer:      m.Layer,
			Label:      m.Label,
			VideoIndex: videoIndex(m),
			base:       base,
			saturation: 1,
			hidden:     isFloor(m.Name),
			visible:    true,
			order:      i,
		}
		g.nodes[n.Name] = n
		g.order = append(g.order, n)
		g.tweens.Set(alphaKey(n.Name), 1)
		g.tweens.Set(scaleKey(n.Name), 1)
	}

	for _, n := range g.order {
		if n.Parent != "" {
			if _, ok := g.nodes[n.Parent]; !ok {
				return nil, fmt.Errorf("scene: mesh %q: unknown parent %q", n.Name, n.Parent)
			}
		}
		if n.hidden || n.Width <= 0 || n.Height <= 0 {
			continue
		}
		shape := cp.NewBox2(g.space.StaticBody, cp.BB{L: n.X, T: n.Y + n.Height, R: n.X + n.Width, B: n.Y}, 0)
		shape.UserData = n
		g.space.AddShape(shape)
	}

	sort.SliceStable(g.order, func(i, j int) bool { return g.order[i].Layer < g.order[j].Layer })
	return g, nil
}

func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns every node in draw order.
func (g *Graph) Nodes() []*Node {
	return g.order
}

// SetVisible fades a node in or out. Video targets pulse while shown.
func (g *Graph) SetVisible(target string, visible bool) {
	n, ok := g.nodes[target]
	if !ok {
		g.logger.Debug("scene target unknown", zap.String("target", target))
		return
	}
	if n.hidden {
		return
	}

	to, cb := 0.0, tween.Callbacks{
		OnUpdate: func(v float64) {
			if v < hiddenAlpha {
				n.visible = false
			}
		},
	}
	if visible {
		to, cb = 1, tween.Callbacks{}
		n.visible = true
	}
	g.tweens.Animate(alphaKey(n.Name), to, visibilityFade, tween.Power2InOut, cb)
	if n.VideoIndex > 0 {
		g.setPulsing(n, visible)
	}
}

func (g *Graph) setPulsing(n *Node, pulse bool) {
	key := scaleKey(n.Name)
	if pulse {
		g.tweens.Set(key, 1)
		g.tweens.Yoyo(key, pulseScale, pulseDuration, tween.SineInOut)
		return
	}
	g.tweens.Animate(key, 1, restoreScale, tween.SineOut, tween.Callbacks{})
}

// SetHighlight sets the saturation multiplier of one node.
func (g *Graph) SetHighlight(target string, amount float64) {
	n, ok := g.nodes[target]
	if !ok {
		g.logger.Debug("scene target unknown", zap.String("target", target))
		return
	}
	n.saturation = amount
}

// SetGlobalHighlight sets the saturation multiplier of every shown node
// except those in exclude.
func (g *Graph) SetGlobalHighlight(amount float64, exclude []string) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	for _, n := range g.order {
		if n.hidden || skip[n.Name] {
			continue
		}
		n.saturation = amount
	}
}

// Resolve walks from node up through its parents to the first video target.
func (g *Graph) Resolve(node string) (int, bool) {
	seen := make(map[string]bool)
	for name := node; name != "" && !seen[name]; {
		seen[name] = true
		n, ok := g.nodes[name]
		if !ok {
			return 0, false
		}
		if n.VideoIndex > 0 {
			return n.VideoIndex, true
		}
		name = n.Parent
	}
	return 0, false
}

// Pick returns the topmost shown node under a world-space point.
func (g *Graph) Pick(x, y float64) (string, bool) {
	var best *Node
	pt := cp.Vector{X: x, Y: y}
	g.space.BBQuery(cp.NewBBForCircle(pt, 0), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(pt).Distance > 0 {
			return
		}
		n, ok := shape.UserData.(*Node)
		if !ok || !n.Visible() {
			return
		}
		if best == nil || n.Layer > best.Layer || (n.Layer == best.Layer && n.order > best.order) {
			best = n
		}
	}, nil)
	if best == nil {
		return "", false
	}
	return best.Name, true
}

func (g *Graph) alpha(n *Node) float64 {
	return g.tweens.ValueOr(alphaKey(n.Name), 1)
}

func (g *Graph) scale(n *Node) float64 {
	return g.tweens.ValueOr(scaleKey(n.Name), 1)
}

func alphaKey(name string) string {
	return "scene/" + name + "/alpha"
}

func scaleKey(name string) string {
	return "scene/" + name + "/scale"
}

func isFloor(name string) bool {
	lname := strings.ToLower(name)
	for _, marker := range hiddenMarkers {
		if strings.Contains(lname, marker) {
			return true
		}
	}
	return false
}

func videoIndex(m scenes.MeshSpec) int {
	if m.VideoIndex > 0 {
		return m.VideoIndex
	}
	match := videoNodeName.FindStringSubmatch(m.Name)
	if match == nil {
		return 0
	}
	idx, err := strconv.Atoi(match[1])
	if err != nil || idx < 1 || idx > maxVideoIndex {
		return 0
	}
	return idx
}

