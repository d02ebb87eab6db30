// Package engine runs the external boot image toolchain.
//
// The engine is opaque to the orchestration layer: an operation either
// succeeds or fails, and every detail worth showing goes to the console.
package engine

import (
	"context"
	"os"
)

// ExtractRequest describes one extract run
type ExtractRequest struct {
	Source            *os.File // image to unpack, positioned at the start
	Name              string   // project name; a random one is used when empty
	Dir               string   // working directory the project is created in
	DecompressRamdisk bool
}

// BuildRequest describes one build run
type BuildRequest struct {
	Dir string // project directory
}

// Engine is the blocking operation surface used by the workflows
type Engine interface {
	Extract(ctx context.Context, req ExtractRequest) bool
	Build(ctx context.Context, req BuildRequest) bool
}
