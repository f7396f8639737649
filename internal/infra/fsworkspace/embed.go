package fsworkspace

import "embed"

//go:embed templates/*
var templatesFS embed.FS

// Sample problems are stored with a .txt suffix so the toolchain never
// compiles them; the suffix is dropped on copy.
//
//go:embed samples
var samplesFS embed.FS
