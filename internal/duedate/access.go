package duedate

import "time"

// Variant is one of the two due date controls.
type Variant int

const (
	// VariantHoverMenu is the calendar icon in an item's hover menu.
	VariantHoverMenu Variant = iota
	// VariantButton is the due date chip shown on an item with a date.
	VariantButton
)

// Access describes what the current user may do with an item's due date.
type Access struct {
	// Editable is false for read-only views of the item.
	Editable bool
	// Licensed is false when the plan does not include due dates.
	Licensed bool
}

// Controls is the presentational state of a due date control.
type Controls struct {
	Disabled bool `json:"disabled"`
	// Title is the hover title of the hover menu icon.
	Title string `json:"title,omitempty"`
	// LockedTooltip explains why the control is unavailable.
	LockedTooltip string `json:"locked_tooltip,omitempty"`
	// Tooltip shows the absolute date on read-only buttons.
	Tooltip     string `json:"tooltip,omitempty"`
	ShowReset   bool   `json:"show_reset"`
	ResetLabel  string `json:"reset_label,omitempty"`
	ShowChevron bool   `json:"show_chevron"`
}

// ControlsFor returns the control state for variant.
func ControlsFor(v Variant, a Access, date DueDate, loc *time.Location) Controls {
	c := Controls{ShowReset: date.IsSet()}
	if c.ShowReset {
		c.ResetLabel = English.Sprintf(noDueDateLabel)
	}
	switch v {
	case VariantHoverMenu:
		c.Disabled = !a.Licensed
		if a.Licensed {
			c.Title = English.Sprintf(addDueDatePrompt)
		} else {
			c.LockedTooltip = English.Sprintf(lockedTooltip)
		}
	case VariantButton:
		c.ShowChevron = a.Editable
		if date.IsSet() && !a.Editable {
			c.Tooltip = English.Tooltip(date, loc)
		}
	}
	return c
}

// ClickResult is what activating a control does.
type ClickResult struct {
	Open        bool
	ShowUpgrade bool
}

// Click decides whether activating the control opens the picker. The hover
// menu stays closed without a license; the button ignores clicks on read-only
// items and offers an upgrade when unlicensed.
func Click(v Variant, a Access) ClickResult {
	switch v {
	case VariantHoverMenu:
		return ClickResult{Open: a.Licensed}
	default:
		if !a.Editable {
			return ClickResult{}
		}
		if !a.Licensed {
			return ClickResult{ShowUpgrade: true}
		}
		return ClickResult{Open: true}
	}
}

// popupRightOffset is the left offset past which the button's popup opens to
// the right.
const popupRightOffset = 50

// PopupOnRight reports whether the picker opens to the right of the control.
func PopupOnRight(v Variant, offsetLeft int) bool {
	if v == VariantHoverMenu {
		return true
	}
	return offsetLeft > popupRightOffset
}
