package main

import (
	"runtime"

	"github.com/matjam/zoomview/internal/cli"
)

func init() {
	// glfw must run on the main thread
	runtime.LockOSThread()
}

func main() {
	cli.Execute()
}
