// Command clipdemo renders clip scenarios through the clip-mask manager
// and writes the result as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/backend"
	_ "github.com/gogpu/gr/backend/soft"
	"github.com/gogpu/gr/backend/wgpu"
	"github.com/gogpu/gr/clip"
	"github.com/gogpu/gr/clipmask"
	"github.com/gogpu/gr/gpu"
	"github.com/gogpu/gr/recording"
)

type config struct {
	scenario  string
	device    string
	mode      string
	width     int
	height    int
	threshold int
	output    string
	trace     bool
	pipelines bool
}

func main() {
	var (
		cfg     config
		verbose bool
	)
	flag.StringVar(&cfg.scenario, "scenario", "holes", "clip scenario: "+strings.Join(scenarioNames(), ", "))
	flag.StringVar(&cfg.device, "device", backend.Soft, "device name")
	flag.StringVar(&cfg.mode, "mode", "auto", "mask mode: auto, stencil, software")
	flag.IntVar(&cfg.width, "width", 256, "image width")
	flag.IntVar(&cfg.height, "height", 256, "image height")
	flag.IntVar(&cfg.threshold, "threshold", clipmask.DefaultFastPathThreshold, "maximum elements for the effect fast path")
	flag.StringVar(&cfg.output, "output", "clip.png", "output file")
	flag.BoolVar(&cfg.trace, "trace", false, "print the recorded device commands")
	flag.BoolVar(&cfg.pipelines, "pipelines", false, "lower the recorded draws to WebGPU pipelines on the noop HAL device")
	flag.BoolVar(&verbose, "v", false, "log clip decisions")
	flag.Parse()

	if verbose {
		gr.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("clipdemo: %v", err)
	}
}

func managerOptions(mode string, threshold int) ([]clipmask.Option, error) {
	opts := []clipmask.Option{clipmask.WithFastPathThreshold(threshold)}
	switch mode {
	case "auto":
	case "stencil":
		opts = append(opts, clipmask.WithAlphaMasks(false))
	case "software":
		opts = append(opts, clipmask.WithSoftwareOnly(true))
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	return opts, nil
}

func run(cfg config, out io.Writer) error {
	build, ok := scenarios[cfg.scenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q (have %s)", cfg.scenario, strings.Join(scenarioNames(), ", "))
	}
	opts, err := managerOptions(cfg.mode, cfg.threshold)
	if err != nil {
		return err
	}
	dev := backend.Get(cfg.device)
	if dev == nil {
		return fmt.Errorf("%w: %q", backend.ErrDeviceNotAvailable, cfg.device)
	}
	defer dev.Close()

	rt, err := dev.NewRenderTarget(cfg.width, cfg.height)
	if err != nil {
		return err
	}
	img, ok := rt.(interface{ Image() *image.Alpha })
	if !ok {
		return fmt.Errorf("device %q cannot read back %T", cfg.device, rt)
	}

	rec := recording.NewRecorder(dev)
	m := clipmask.New(rec, dev, dev.PathRenderers(), opts...)

	stack := clip.NewStack()
	build(stack, float64(cfg.width), float64(cfg.height))

	ds := gpu.NewDrawState(rt)
	ds.ClipEnabled = true
	setup, err := m.SetupClipping(ds, &clip.Data{Stack: stack}, nil)
	switch {
	case errors.Is(err, clipmask.ErrClipEmpty):
		fmt.Fprintln(out, "clip is empty, nothing drawn")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "mask=%v stencil=%v scissor=%v coverage=%d\n",
			setup.MaskType, setup.StencilMode, setup.HasScissor, setup.Coverage)
		drawErr := rec.DrawRect(ds, gpu.Bounds(rt).Rect(), false)
		setup.Restore()
		if drawErr != nil {
			return drawErr
		}
	}

	r := rec.Finish()
	if cfg.trace {
		for i, cmd := range r.Commands() {
			fmt.Fprintf(out, "%3d %v\n", i, cmd.Type())
		}
	}
	res := r.Resources()
	fmt.Fprintf(out, "%d device commands, %d paths, %d states\n", r.Len(), res.PathCount(), res.StateCount())
	if cfg.pipelines {
		if err := lowerPipelines(r, out); err != nil {
			return err
		}
	}

	return writePNG(cfg.output, img.Image())
}

// lowerPipelines builds the WebGPU pipelines the recorded draws need.
func lowerPipelines(r *recording.Recording, out io.Writer) error {
	p, err := wgpu.Open(&noop.Adapter{})
	if err != nil {
		return err
	}
	defer p.Close()
	plan, err := p.Prepare(r, gputypes.TextureFormatR8Unorm)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d draws, %d clears, %d pipelines\n", len(plan.Draws), plan.Clears, p.PipelineCount())
	return nil
}

var (
	paper = color.RGBA{0xfa, 0xfa, 0xf5, 0xff}
	ink   = color.RGBA{0x1e, 0x5a, 0xb4, 0xff}
)

// writePNG paints ink through the coverage mask onto paper.
func writePNG(path string, mask *image.Alpha) error {
	dst := image.NewRGBA(mask.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(ink), image.Point{}, mask, mask.Bounds().Min, draw.Over)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
