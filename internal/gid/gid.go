// Package gid extracts the numeric id the Go runtime assigns to the calling
// goroutine. It exists only to give the syncore ThreadHandle registry an
// ambient lookup key ("ThreadImpl::current()" in the library's terms) --
// goroutine spawning and lifecycle are an external collaborator, so this
// package deliberately does nothing beyond reading the id out of the stack
// trace header the runtime already formats for us.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// Current returns the id of the calling goroutine. Ids are reused by the
// runtime once a goroutine exits, so callers must not treat the result as a
// durable identity beyond the goroutine's own lifetime.
func Current() int64 {
	buf := make([]byte, 64)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}

	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}

	id, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		panic("gid: could not parse goroutine id from runtime.Stack output: " + err.Error())
	}
	return id
}
