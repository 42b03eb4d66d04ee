// Package main is the entry point for the taskdeck CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/api"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/storage"
	"taskdeck/internal/store"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (*store.Stores, error) {
		client := api.New(cfg.ServerURL)
		records := storage.NewFileRecords(cfg.Dir)
		return store.Open(client, records), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	os.Exit(dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
