package field

import "image/color"

// Surface is the 2-D drawing target of the particle field.
//
// Implementations: render.EbitenSurface (desktop, browser, mobile) and
// term.Surface (terminal cells).
type Surface interface {
	// SetSize matches the surface's pixel dimensions to the viewport.
	SetSize(width, height int)
	// Clear wipes the whole surface.
	Clear()
	// FillCircle draws a filled disc centred on (x, y).
	FillCircle(x, y, radius float64, clr color.Color)
	// StrokeLine draws a straight line segment.
	StrokeLine(x1, y1, x2, y2, width float64, clr color.Color)
}

// Host supplies the viewport and the external signals the field reacts to.
// Every registration returns a cancel function that removes the listener.
//
// Hosts must deliver callbacks on the goroutine that drives the frames.
type Host interface {
	// Viewport returns the current viewport size in surface pixels.
	Viewport() (width, height float64)
	OnResize(fn func(width, height float64)) (cancel func())
	OnPointerMove(fn func(x, y float64)) (cancel func())
	OnScroll(fn func()) (cancel func())
	// ObserveSections reports visibility changes of the named page sections.
	// visible is true once at least threshold (0-1) of a section is in view.
	ObserveSections(ids []string, threshold float64, fn func(id string, visible bool)) (cancel func())
}
