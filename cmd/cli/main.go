package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/worldpub/internal/buildinfo"
	"github.com/dmitrijs2005/worldpub/internal/client/cli"
	"github.com/dmitrijs2005/worldpub/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
