package planner

import "github.com/pkordes/tripweaver/internal/domain"

// DragState is the phase of a pick-up/drop interaction.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DragController bridges a two-phase gesture (pick up an attraction, commit
// it to a slot) to grid mutations. It carries at most one attraction.
// It is not safe for concurrent use.
type DragController struct {
	carried *domain.Attraction
}

// Resume rebuilds a controller from a previously stored carried attraction.
// A nil carried attraction yields an idle controller.
func Resume(carried *domain.Attraction) *DragController {
	c := &DragController{}
	if carried != nil {
		c.PickUp(*carried)
	}
	return c
}

// State reports the current phase.
func (c *DragController) State() DragState {
	if c.carried == nil {
		return Idle
	}
	return Dragging
}

// Carried returns a copy of the carried attraction.
func (c *DragController) Carried() (domain.Attraction, bool) {
	if c.carried == nil {
		return domain.Attraction{}, false
	}
	return c.carried.Clone(), true
}

// PickUp starts carrying a snapshot of a. Picking up while already dragging
// replaces the carried attraction.
func (c *DragController) PickUp(a domain.Attraction) {
	snap := a.Clone()
	c.carried = &snap
}

// Hover reports whether a drop target should show an affordance. It never
// changes state.
func (c *DragController) Hover() bool {
	return c.carried != nil
}

// Drop places the carried attraction at t and returns to Idle. It reports
// whether the schedule changed; dropping while idle, or onto a slot that does
// not exist, changes nothing but still ends the drag.
func (c *DragController) Drop(s *domain.Schedule, t domain.SlotTarget) bool {
	if c.carried == nil {
		return false
	}
	placed := Place(s, t, *c.carried)
	c.carried = nil
	return placed
}

// Cancel abandons the drag without touching any schedule.
func (c *DragController) Cancel() {
	c.carried = nil
}
