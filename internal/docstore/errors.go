package docstore

import "errors"

// ErrIO reports a directory or file operation failure.
var ErrIO = errors.New("io error")

// ErrRead reports an unreadable or undecodable collection file.
var ErrRead = errors.New("cannot read collection")

// ErrWrite reports a failed collection rewrite.
var ErrWrite = errors.New("cannot write collection")
