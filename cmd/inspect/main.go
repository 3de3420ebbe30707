package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/cashflow/loader"
)

var cli struct {
	File string `help:"Period file to parse." arg:"" type:"existingfile"`
}

// inspect dumps the parsed form of a period file, for debugging the
// upstream mapping output.
func main() {
	ctx := kong.Parse(&cli)

	ldr := loader.New()
	period, err := ldr.Load(context.Background(), cli.File)
	ctx.FatalIfErrorf(err)

	repr.Println(period)
}
