package ipc

import "github.com/matjam/zoomview/internal/viewer"

type CommandType string

const (
	CommandStop   CommandType = "stop"
	CommandToggle CommandType = "toggle"
	CommandFling  CommandType = "fling"
)

type Command struct {
	Type      CommandType `json:"type"`
	VelocityX float32     `json:"velocity_x,omitempty"`
	VelocityY float32     `json:"velocity_y,omitempty"`
}

// FlingRequest is the body of POST /fling, in pixels per second.
type FlingRequest struct {
	VelocityX float32 `json:"velocity_x"`
	VelocityY float32 `json:"velocity_y"`
}

// ViewStatus is the snapshot of the view published by the render loop once
// per frame.
type ViewStatus struct {
	Image      string       `json:"image"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	State      viewer.State `json:"state"`
	Scale      float32      `json:"scale"`
	SmallScale float32      `json:"small_scale"`
	BigScale   float32      `json:"big_scale"`
	Flinging   bool         `json:"flinging"`
	Animating  bool         `json:"animating"`
	Frames     uint64       `json:"frames"`
}

type ManagerInterface interface {
	ViewStatus() ViewStatus
	EnqueueCommand(Command) bool
}

type StatusResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Version string     `json:"version"`
	PID     int        `json:"pid"`
	Socket  string     `json:"socket"`
	Config  string     `json:"config"`
	View    ViewStatus `json:"view"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
