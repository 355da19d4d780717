// Package recfile is a human-readable encoding of an ordered list of
// records, each a list of key/value entries.
//
// Every record is a block: a header line followed by the record body.
//
//	--- 18 record
//	key: k1
//	value: v1
//
// The header is "--- ${size} ${name}" where ${size} is the size of the
// body in bytes and ${name} is optional. The body is a list of
// "key: value" lines; values that are empty, long or not printable
// ASCII are written as "key:+${len}" followed by the raw value on the
// next line(s). Empty data decodes to no records.
//
// Unlike a log, a recfile is meant to be written as a whole. Decoding
// is strict: anything not written by Writer is a *SyntaxError.
package recfile
