package docsense

import _ "embed"

// Version is the release version of docsense, read from the VERSION file.
//
//go:embed VERSION
var Version string
