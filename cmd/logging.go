package cmd

import (
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("raytracer")

// setupLogging raises verbosity from the global -v and -vv flags.
func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
