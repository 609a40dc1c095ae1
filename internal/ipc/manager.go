package ipc

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Manager sits between the control socket and the render loop. Handlers
// enqueue commands; the render loop drains them and publishes a status
// snapshot back.
type Manager struct {
	sync.Mutex
	cmds   chan Command
	status ViewStatus
}

func NewManager() *Manager {
	return &Manager{
		cmds: make(chan Command, 16),
	}
}

// EnqueueCommand queues cmd for the render loop. It never blocks; when the
// queue is full the command is dropped and false is returned.
func (m *Manager) EnqueueCommand(cmd Command) bool {
	select {
	case m.cmds <- cmd:
		return true
	default:
		log.Warnf("command queue full, dropping %s", cmd.Type)
		return false
	}
}

// Commands is drained by the render loop.
func (m *Manager) Commands() <-chan Command {
	return m.cmds
}

func (m *Manager) Publish(s ViewStatus) {
	m.Lock()
	defer m.Unlock()
	m.status = s
}

func (m *Manager) ViewStatus() ViewStatus {
	m.Lock()
	defer m.Unlock()
	return m.status
}
