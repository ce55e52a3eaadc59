package funnelfy

import _ "embed"

// Version is the release of the editor core, read from the VERSION file.
//
//go:embed VERSION
var Version string
