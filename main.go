package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-weekend-raytracer/cmd"
	"github.com/df07/go-weekend-raytracer/pkg/log"
)

func newApp() *cli.App {
	// The default "version, v" flag would clash with the global -v flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "weekend-raytracer"
	app.Usage = "render sphere scenes with a recursive path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a built-in scene to a PNG or plain-text PPM file. Width, samples,
depth, workers and seed may also be set through the RAYTRACER_WIDTH,
RAYTRACER_SPP, RAYTRACER_DEPTH, RAYTRACER_WORKERS and RAYTRACER_SEED
environment variables.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "serve",
			Usage:  "serve the HTTP render API",
			Flags:  cmd.ServeFlags,
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("raytracer").Error(err)
		os.Exit(1)
	}
}
