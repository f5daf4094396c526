package main

import (
	"log"
	"net"
	"net/http"

	"collabchat/internal/config"
	"collabchat/internal/devserver"
)

func main() {
	cfg := config.LoadConfig()
	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)

	srv := devserver.New(cfg.Upload.MaxFileBytes)
	log.Printf("reference backend listening on %s (%s)", addr, cfg.Server.Environment)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
