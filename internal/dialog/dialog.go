// Package dialog tracks which console modals are visible and which device
// each one is bound to. Flags are independent: nothing here enforces that
// only one dialog is open at a time, matching the console's behavior.
package dialog

import (
	"sync"

	"rockfall-console-backend/internal/model"
)

// Name identifies one modal surface.
type Name string

const (
	Config          Name = "config"
	View            Name = "view"
	Details         Name = "details"
	AddDevice       Name = "addDevice"
	Import          Name = "import"
	PasswordConfirm Name = "passwordConfirm"
	DroneProgress   Name = "droneProgress"
)

// Names lists the known dialog surfaces in display order.
var Names = []Name{Config, View, Details, AddDevice, Import, PasswordConfirm, DroneProgress}

// State is the visibility record for one dialog.
type State struct {
	IsOpen bool          `json:"isOpen"`
	Device *model.Device `json:"device"`
	Extra  any           `json:"extra"`
}

// Controller holds the visibility state for the fixed dialog set.
type Controller struct {
	mu     sync.RWMutex
	states map[Name]State
}

// NewController creates a controller with every dialog closed.
func NewController() *Controller {
	return &Controller{states: make(map[Name]State)}
}

// Open marks the dialog visible and binds it to the given device. Extra
// carries dialog-specific context, e.g. the import type for the import dialog.
func (c *Controller) Open(name Name, device *model.Device, extra any) {
	c.mu.Lock()
	c.states[name] = State{IsOpen: true, Device: device, Extra: extra}
	c.mu.Unlock()
}

// Close resets the dialog to its zero state. Closing an already-closed
// dialog is harmless.
func (c *Controller) Close(name Name) {
	c.mu.Lock()
	c.states[name] = State{}
	c.mu.Unlock()
}

// Get returns the current state for the dialog.
func (c *Controller) Get(name Name) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states[name]
}

// Snapshot returns the state of every known dialog.
func (c *Controller) Snapshot() map[Name]State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Name]State, len(Names))
	for _, n := range Names {
		out[n] = c.states[n]
	}
	return out
}
