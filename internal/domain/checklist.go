package domain

import "time"

// ChecklistItem is a single actionable step in a generated checklist.
// The completion flag is client state only; the model never sees it.
type ChecklistItem struct {
	ID          string `json:"id"`
	Task        string `json:"task"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// Checklist is a titled, ordered sequence of steps produced by one
// generation request. Regenerating replaces the whole checklist; checklists
// are never merged.
type Checklist struct {
	Title   string          `json:"title"`
	Service ServiceType     `json:"service"`
	Items   []ChecklistItem `json:"items"`
}

// Toggle flips the completion flag of the item with the given id and
// reports whether the item exists.
func (c *Checklist) Toggle(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].IsCompleted = !c.Items[i].IsCompleted
			return true
		}
	}
	return false
}

// Reset clears every completion flag. Task text, descriptions and ordering
// are left untouched.
func (c *Checklist) Reset() {
	for i := range c.Items {
		c.Items[i].IsCompleted = false
	}
}

// CompletedCount returns how many items are checked off.
func (c *Checklist) CompletedCount() int {
	n := 0
	for i := range c.Items {
		if c.Items[i].IsCompleted {
			n++
		}
	}
	return n
}

// SavedChecklist is a checklist snapshot persisted to a user's account.
type SavedChecklist struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Checklist Checklist `json:"checklist"`
	SavedAt   time.Time `json:"saved_at"`
}
