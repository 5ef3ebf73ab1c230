package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/web/server"
)

// ServeFlags are the flags accepted by the serve command.
var ServeFlags = []cli.Flag{
	cli.IntFlag{
		Name:   "port, p",
		Value:  8080,
		Usage:  "port to serve on",
		EnvVar: "RAYTRACER_PORT",
	},
}

// Serve runs the HTTP render API until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", port)
	return server.NewServer(port, log.New("server")).Start(serveCtx)
}
