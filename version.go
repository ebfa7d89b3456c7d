package goap

import _ "embed"

// Version is the release of the library and the goap CLI.
//
//go:embed VERSION
var Version string
