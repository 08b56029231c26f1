package main

import (
	"os"

	"github.com/npillmayer/btreekit/internal/ctl"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

func main() {
	// ctl sets the trace level from configuration and routes the tree
	// packages' traces here
	gtrace.CoreTracer = gologadapter.New()
	ctl.Execute(os.Args[1:])
}
