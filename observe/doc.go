/*
Package observe provides observers for the structural change events of
B-trees: a Recorder keeping an in-memory event log, a Tee fanning events
out to several observers, and a Broadcaster publishing events to any number
of asynchronous subscribers.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package observe

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'btree'
func tracer() tracing.Trace {
	return tracing.Select("btree")
}

// ErrClosed is returned when subscribing to a closed Broadcaster.
var ErrClosed = errors.New("observe: broadcaster closed")
