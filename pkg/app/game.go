package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/engine"
)

const (
	screenWidth  = 640
	screenHeight = 480

	// Lifecycle callbacks see a fixed timestep: ebiten ticks at 60 TPS.
	frameDelta = float32(1.0 / 60.0)
)

// Game drives the scene from ebiten's loop. Each tick runs _process and
// _physics_process with a fixed delta, and the space key is forwarded to
// _input as a "ui_accept" event node.
type Game struct {
	scene   *engine.Scene
	timeout time.Duration
	elapsed time.Duration
}

// NewGame wraps a scene for ebiten. A zero timeout runs until the window
// is closed.
func NewGame(scene *engine.Scene, timeout time.Duration) *Game {
	return &Game{scene: scene, timeout: timeout}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.scene.Input(engine.NewNode("ui_accept")); err != nil {
			return err
		}
	}

	if err := g.scene.Update(frameDelta); err != nil {
		return err
	}
	if err := g.scene.PhysicsUpdate(frameDelta); err != nil {
		return err
	}

	g.elapsed += time.Second / 60
	if g.timeout > 0 && g.elapsed >= g.timeout {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game. Each visible node is drawn as a debug
// label at its position so script-driven movement is observable without
// any asset pipeline.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x20, G: 0x24, B: 0x28, A: 0xff})
	ebitenutil.DebugPrint(screen, "ferris  [space] ui_accept")

	for i, node := range g.scene.Nodes() {
		if !node.Visible() {
			continue
		}
		pos := node.Position()
		scale := node.Scale()
		w := 24 * scale.X
		h := 24 * scale.Y
		vector.DrawFilledRect(screen, pos.X, pos.Y, w, h, nodeColor(i), false)
		label := fmt.Sprintf("%s (%.1f, %.1f)", node.Name(), pos.X, pos.Y)
		ebitenutil.DebugPrintAt(screen, label, int(pos.X), int(pos.Y)+int(h)+2)
	}
}

var nodePalette = []color.RGBA{
	{R: 0xe0, G: 0x60, B: 0x50, A: 0xff},
	{R: 0x50, G: 0xc0, B: 0x70, A: 0xff},
	{R: 0x50, G: 0x80, B: 0xe0, A: 0xff},
	{R: 0xd0, G: 0xb0, B: 0x40, A: 0xff},
}

func nodeColor(i int) color.RGBA {
	return nodePalette[i%len(nodePalette)]
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (app *Application) runWindowed(scene *engine.Scene) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ferris")

	app.log.Info("running windowed", "nodes", scene.Len())
	if err := ebiten.RunGame(NewGame(scene, app.config.Timeout)); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
