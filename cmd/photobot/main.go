package main

import (
	"log"

	corecmd "github.com/m3rciful/photobot/core/cmd"
	"github.com/m3rciful/photobot/internal/app"
	"github.com/m3rciful/photobot/internal/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatal(err)
	}
}
