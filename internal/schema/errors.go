package schema

import "errors"

// ErrParse reports empty or malformed JSON content.
var ErrParse = errors.New("parse error")

// ErrStructure reports an envelope or per-record shape violation.
var ErrStructure = errors.New("structure error")

// ErrInvalidEnum reports a field outside its enumerated values.
var ErrInvalidEnum = errors.New("invalid enum value")

// ErrInvalidFormat reports a field that fails its format constraint.
var ErrInvalidFormat = errors.New("invalid format")
