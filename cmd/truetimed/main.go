package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crow1013/truetime"
)

var (
	cfgPath = flag.String("c", "config.yml", "Default config path")
)

func main() {
	flag.Parse()
	cfg, err := truetime.LoadConfig(*cfgPath)
	if err != nil {
		log.Printf("config %s: %s, using defaults", *cfgPath, err)
		cfg = truetime.DefaultConfig()
	}

	m := truetime.NewSyncManager(cfg)
	go m.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	m.Stop()

	if now, err := m.Client().Now(); err == nil {
		log.Printf("true time at shutdown: %s", now)
	}
}
