package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoInstallation  = errors.New("no installation directory resolvable")
	ErrNotInstalled    = errors.New("language not installed")
	ErrLaunch          = errors.New("cannot launch tagger executable")
	ErrTimeout         = errors.New("tagger timed out")
	ErrEncoding        = errors.New("undecodable tagger output")
	ErrMalformedLine   = errors.New("malformed tagger line")
	ErrUnbalancedChunk = errors.New("unbalanced chunk marker")
	ErrUnclosedChunk   = errors.New("unclosed chunk marker")
)
