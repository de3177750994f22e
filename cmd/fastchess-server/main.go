// Package main runs the analysis HTTP server.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fastchess/internal/library"
	"fastchess/internal/server"
	"fastchess/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cacheDir := flag.String("cache-dir", "fastchess-cache", "analysis cache directory (BadgerDB)")
	libraryPath := flag.String("library", "fastchess-library.db", "position library file (SQLite)")
	flag.Parse()

	st, err := store.Open(*cacheDir)
	if err != nil {
		log.Fatalf("failed to open analysis cache: %v", err)
	}
	defer st.Close()

	lib, err := library.Open(*libraryPath)
	if err != nil {
		log.Fatalf("failed to open position library: %v", err)
	}
	defer lib.Close()

	app := server.New(st, lib)

	// Shut down cleanly on SIGINT/SIGTERM so badger can flush.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", *addr)
	if err := app.Listen(*addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
