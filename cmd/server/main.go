package main

import (
	"flag"
	"log"

	"mailbox-chess/httpapi"
	"mailbox-chess/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to config.json (default: search upwards from the working directory)")
	listen := flag.String("listen", "", "Listen address, overrides the config file")
	flag.Parse()

	cfg := httpapi.DefaultConfig()
	path := *configPath
	if path == "" {
		if found, _, err := httpapi.FindConfigPath(); err == nil {
			path = found
		}
	}
	if path != "" {
		loaded, err := httpapi.LoadConfig(path)
		if err != nil {
			log.Fatalf("failed to load config: %s", err)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	closer, err := logging.Init(cfg.LogFile, "[server] ")
	if err != nil {
		log.Fatalf("failed to open log: %s", err)
	}
	defer closer.Close()

	app := httpapi.NewApp(cfg)
	log.Printf("listening on %s", cfg.Listen)
	log.Fatal(app.Listen(cfg.Listen))
}
