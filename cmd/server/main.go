// Package main implements the entry point for the flashdeck API server,
// which serves flashcard decks stored as JSON documents in a storage bucket
// and manages their generated image and audio assets.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
