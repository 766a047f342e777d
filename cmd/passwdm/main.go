package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/passwdm/internal/cli"
	"github.com/dmitrijs2005/passwdm/internal/config"
	"github.com/dmitrijs2005/passwdm/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())

}
