package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/LuisM78/fortran-python/pkg/checkpoint"
	"github.com/LuisM78/fortran-python/pkg/compare"
	"github.com/LuisM78/fortran-python/pkg/fluid"
	"github.com/LuisM78/fortran-python/pkg/render"
)

const usage = `usage: pipeflow <command> [flags]

commands:
  run      advance the channel flow and write checkpoints (default)
  view     advance the channel flow in a window
  compare  compare checkpoints with reference solutions
  replay   render frames from reference solutions
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("pipeflow: ")

	cmd, args := "run", os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "run":
		err = runCmd(args)
	case "view":
		err = viewCmd(args)
	case "compare":
		err = compareCmd(args)
	case "replay":
		err = replayCmd(args)
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

// loadConfig returns the defaults, or the defaults overlaid with path.
func loadConfig(path string) (fluid.Config, error) {
	if path == "" {
		log.Println("Using default configuration")
		return fluid.DefaultConfig(), nil
	}
	cfg, err := fluid.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	log.Printf("Loaded configuration from %s", path)
	return cfg, nil
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a JSON configuration file")
	nt := fs.Int("nt", -1, "number of time steps (overrides config)")
	out := fs.String("out", "", "checkpoint directory (overrides config)")
	frames := fs.String("frames", "", "frame directory (overrides config), \"none\" disables frames")
	workers := fs.Int("workers", -1, "goroutines for the interior update, 0 = all CPUs (overrides config)")
	checkFinite := fs.Bool("check-finite", false, "stop when u or v stops being finite")
	movie := fs.String("movie", "", "also write frames to this MJPEG AVI file")
	scale := fs.Int("scale", 1, "frame pixels per grid point")
	fps := fs.Int("fps", 10, "movie frames per second")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *nt >= 0 {
		cfg.NT = *nt
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *frames == "none" {
		cfg.FramesDir = ""
	} else if *frames != "" {
		cfg.FramesDir = *frames
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *checkFinite {
		cfg.CheckFinite = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Printf("Configuration:\n%s", cfg)

	writer, err := checkpoint.NewWriter(cfg.OutputDir, nil)
	if err != nil {
		return err
	}
	sinks := []fluid.Sink{writer}

	var fw *render.FrameWriter
	if cfg.FramesDir != "" {
		fw, err = render.NewFrameWriter(cfg.FramesDir, *scale, nil)
		if err != nil {
			return err
		}
		if *movie != "" {
			mov, err := render.NewMovie(*movie, cfg.NX*fw.Scale(), cfg.NY*fw.Scale(), *fps)
			if err != nil {
				return err
			}
			fw.SetMovie(mov)
		}
		sinks = append(sinks, fw)
	} else if *movie != "" {
		return errors.New("-movie needs a frame directory")
	}

	s, err := fluid.NewStepper(cfg, sinks...)
	if err != nil {
		return err
	}
	runErr := s.Run()
	if fw != nil {
		if err := fw.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func compareCmd(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the JSON configuration of the run")
	data := fs.String("data", "", "checkpoint directory (default: the config's output directory)")
	results := fs.String("results", "results", "reference solution directory")
	charts := fs.String("charts", "compareprofiles", "chart directory, empty disables charts")
	all := fs.Bool("all", false, "also compare the first checkpoint")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *data == "" {
		*data = cfg.OutputDir
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	c, err := compare.NewComparer(g, compare.Options{
		ReferenceDir: *results,
		ChartDir:     *charts,
		IncludeFirst: *all,
	}, nil)
	if err != nil {
		return err
	}
	res, err := c.Run(checkpoint.DirCatalog{Dir: *data})
	log.Printf("Compared %d checkpoints", len(res))
	return err
}

func replayCmd(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the JSON configuration of the run")
	results := fs.String("results", "results", "reference solution directory")
	frames := fs.String("frames", "frames2", "frame directory")
	nt := fs.Int("nt", -1, "last step to look for (default: the config's nt)")
	scale := fs.Int("scale", 1, "frame pixels per grid point")
	movie := fs.String("movie", "", "also write frames to this MJPEG AVI file")
	fps := fs.Int("fps", 10, "movie frames per second")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *nt < 0 {
		*nt = cfg.NT
	}
	g, err := cfg.Grid()
	if err != nil {
		return err
	}
	fw, err := render.NewFrameWriter(*frames, *scale, nil)
	if err != nil {
		return err
	}
	if *movie != "" {
		mov, err := render.NewMovie(*movie, g.NumX*fw.Scale(), g.NumY*fw.Scale(), *fps)
		if err != nil {
			return err
		}
		fw.SetMovie(mov)
	}
	_, replayErr := compare.Replay(*results, g, *nt, cfg.CheckpointInterval, fw, nil)
	if err := fw.Close(); err != nil && replayErr == nil {
		replayErr = err
	}
	return replayErr
}
