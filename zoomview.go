package zoomview

import (
	_ "embed"
)

//go:embed VERSION
var Version string

//go:embed zoomview.toml
var DefaultConfig string
