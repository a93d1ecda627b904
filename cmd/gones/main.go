package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nesgo/console"
	"nesgo/mappers"
	"nesgo/nesrom"

	"github.com/hajimehoshi/ebiten/v2"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		log.Fatalf("Couldn't Get() mapper: %v", err)
	}

	bus := console.New(m)

	ctx, cancel := context.WithCancel(context.Background())

	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigQuit
		cancel()
	}()

	go func(ctx context.Context) {
		if err := bus.Run(ctx); err != nil {
			log.Fatalf("run stopped: %v", err)
		}
	}(ctx)

	if err := ebiten.RunGame(bus); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}
