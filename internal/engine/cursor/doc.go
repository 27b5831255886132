// Package cursor provides the edit position used by the editor loop.
//
// A Cursor stores a raw (line, column) pair and a reference to the buffer it
// navigates. The raw values are "desired" positions: after moving down onto
// a shorter line the raw column is kept, and only reads clamp it. Reading
// Line or Column therefore always yields a valid position:
//
//	Line()   == min(rawLine, LineCount()-1)
//	Column() == min(rawColumn, LineLen(Line()))
//
// Moving back onto a longer line restores the original column. This is a
// plain clamped raw value, not a remembered maximum: any horizontal move
// re-bases the raw column on the clamped one.
//
// Thread Safety:
//
// Cursor is NOT safe for concurrent use and reads the buffer without
// locking. It must be guarded by the same lock as its buffer.
package cursor
