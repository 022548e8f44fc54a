package main

import (
	"flag"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/LuisM78/fortran-python/pkg/checkpoint"
	"github.com/LuisM78/fortran-python/pkg/fluid"
	"github.com/LuisM78/fortran-python/pkg/render"
)

// Game steps the solver from the ebiten update loop and draws the speed or
// the vorticity.
type Game struct {
	stepper       *fluid.Stepper
	stepsPerFrame int
	paused        bool
	vorticity     bool
	frame         *ebiten.Image
}

func NewGame(s *fluid.Stepper, stepsPerFrame int) *Game {
	g := s.Grid()
	return &Game{
		stepper:       s,
		stepsPerFrame: max(stepsPerFrame, 1),
		frame:         ebiten.NewImage(g.NumX, g.NumY),
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.vorticity = !g.vorticity
	}
	if g.paused {
		return nil
	}
	for k := 0; k < g.stepsPerFrame && !g.stepper.Done(); k++ {
		if err := g.stepper.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	field := g.stepper.Field()
	mode := "speed"
	s := field.VelocityMagnitude()
	if g.vorticity {
		mode = "vorticity"
		s = field.Vorticity(g.stepper.Grid())
	}
	img := render.Heatmap(s, 1)
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)

	status := ""
	if g.paused {
		status = " (paused)"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("step %d/%d t=%.2f %s%s\nFPS: %0.2f\n[space] pause  [v] speed/vorticity",
		g.stepper.Iteration(), g.stepper.Config().NT, g.stepper.Time(), mode, status, ebiten.ActualFPS()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.stepper.Grid()
	return grid.NumX, grid.NumY
}

func viewCmd(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a JSON configuration file")
	stepsPerFrame := fs.Int("steps", 10, "solver steps per displayed frame")
	scale := fs.Int("scale", 2, "window pixels per grid point")
	save := fs.Bool("save", false, "write checkpoints while viewing")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	var sinks []fluid.Sink
	if *save {
		w, err := checkpoint.NewWriter(cfg.OutputDir, nil)
		if err != nil {
			return err
		}
		sinks = append(sinks, w)
	}
	s, err := fluid.NewStepper(cfg, sinks...)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.NX*max(*scale, 1), cfg.NY*max(*scale, 1))
	ebiten.SetWindowTitle("Channel flow")
	return ebiten.RunGame(NewGame(s, *stepsPerFrame))
}
