package types

type EasingMode string

const (
	EasingLinear               EasingMode = "linear"
	EasingEaseIn               EasingMode = "ease-in"
	EasingEaseOut              EasingMode = "ease-out"
	EasingEaseInOut            EasingMode = "ease-in-out"
	EasingAccelerateDecelerate EasingMode = "accelerate-decelerate"
)

// RenderMode selects how the host paints the view.
type RenderMode string

const (
	RenderModeGL       RenderMode = "gl"       // transform applied by the GL matrix stack
	RenderModeSoftware RenderMode = "software" // frame rasterized on the CPU, uploaded as one texture
)
