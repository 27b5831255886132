// Package buffer provides the line-oriented text buffer edited by the
// editor loop.
//
// A Buffer is an ordered sequence of lines, each line a slice of runes with
// no terminator. The buffer always holds at least one line: an empty
// document is a single empty line, and no operation can remove the last
// line.
//
// Basic usage:
//
//	buf := buffer.New()
//	buf.InsertChar(0, 0, 'a')
//	buf.InsertChar(0, 1, 'b')
//	buf.SplitLine(0, 1)     // "a", "b"
//	col := buf.MergeLine(1) // "ab", col == 1
//
// Persistence:
//
// A buffer loaded with Load is bound to a path and a Store. Persist writes
// every line followed by a newline back through the Store and clears the
// dirty flag. Buffers created with New have no backing store and Persist
// is a no-op for them.
//
// Thread Safety:
//
// Buffer is NOT safe for concurrent use. The editor session guards the
// buffer, the cursor and the viewport with a single lock; callers outside
// a session must provide their own synchronization.
package buffer
