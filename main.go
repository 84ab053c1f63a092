package main

import (
	"log"
	"os"

	"route-bench/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
