package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// RenderFlags are the flags accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:   "width",
		Usage:  "frame width (0 = scene default)",
		EnvVar: "RAYTRACER_WIDTH",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (0 = derived from width and the scene aspect ratio)",
	},
	cli.IntFlag{
		Name:   "spp",
		Usage:  "samples per pixel (0 = scene default)",
		EnvVar: "RAYTRACER_SPP",
	},
	cli.IntFlag{
		Name:   "depth",
		Value:  -1,
		Usage:  "maximum ray bounces (-1 = scene default)",
		EnvVar: "RAYTRACER_DEPTH",
	},
	cli.IntFlag{
		Name:   "workers",
		Usage:  "parallel scanline workers (0 = one per CPU)",
		EnvVar: "RAYTRACER_WORKERS",
	},
	cli.Int64Flag{
		Name:   "seed",
		Value:  42,
		Usage:  "sampler seed; also lays out seeded scenes",
		EnvVar: "RAYTRACER_SEED",
	},
	cli.StringFlag{
		Name:  "ground",
		Usage: "ground color name such as forestgreen",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "frame.png",
		Usage: "output file (.png or .ppm); - writes PPM to stdout",
	},
}

// RenderOptions holds the render command settings
type RenderOptions struct {
	Scene           string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	Seed            int64
	Ground          string
	Out             string
}

func renderOptions(ctx *cli.Context) RenderOptions {
	return RenderOptions{
		Scene:           ctx.String("scene"),
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
		Ground:          ctx.String("ground"),
		Out:             ctx.String("out"),
	}
}

// prepareScene builds the scene and applies the option overrides on top of
// its recommended settings
func prepareScene(opts RenderOptions) (*scene.Scene, error) {
	sc, err := scene.Create(opts.Scene, opts.Seed)
	if err != nil {
		return nil, err
	}

	if opts.Ground != "" {
		albedo, err := material.NamedColor(opts.Ground)
		if err != nil {
			return nil, err
		}
		if !sc.SetGroundColor(albedo) {
			logger.Warningf("scene %q has no ground; ignoring ground color", opts.Scene)
		}
	}

	width, height := sc.Config.Width, sc.Config.Height
	if opts.Width > 0 {
		width = opts.Width
		height = int(float64(width) / sc.CameraConfig.AspectRatio)
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	sc.Resize(width, max(1, height))

	if opts.SamplesPerPixel > 0 {
		sc.Config.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.MaxDepth >= 0 {
		sc.Config.MaxDepth = opts.MaxDepth
	}
	sc.Config.NumWorkers = opts.Workers
	sc.Config.Seed = opts.Seed

	return sc, sc.Config.Validate()
}

// RenderFrame renders a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderOptions(ctx)
	if opts.Out == "-" {
		// Keep stdout clean for the image
		log.SetSink(os.Stderr)
	}

	sc, err := prepareScene(opts)
	if err != nil {
		return err
	}

	r, err := renderer.NewRaytracer(sc, sc.Config, log.New("renderer"))
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q", sc.Name)
	img, stats, err := r.Render(renderCtx)
	if err != nil {
		return err
	}

	if opts.Out == "-" {
		err = output.WritePPM(os.Stdout, img)
	} else {
		err = output.Save(opts.Out, img)
	}
	if err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", formatStats(stats, renderer.CalculateAverageLuminance(img)))
	if opts.Out != "-" {
		logger.Noticef("saved frame to %s", opts.Out)
	}
	return nil
}

func formatStats(stats renderer.RenderStats, luminance float64) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Samples/pixel", "Max depth", "Workers", "Samples", "Avg luminance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.4f", luminance),
		stats.Duration.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "SAMPLES/SEC", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})

	table.Render()
	return buf.String()
}
