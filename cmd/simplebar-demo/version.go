package main

// Set at link time, e.g.
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=$(git rev-parse --short HEAD)" ./cmd/simplebar-demo
var (
	version = "dev"
	commit  = "unknown"
)
