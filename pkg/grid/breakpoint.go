package grid

// Breakpoint names a viewport-width range that maps to a column count.
type Breakpoint string

// Breakpoints from narrowest to widest.
const (
	BreakpointSmallMobile Breakpoint = "smallMobile"
	BreakpointMobile      Breakpoint = "mobile"
	BreakpointTablet      Breakpoint = "tablet"
	BreakpointDesktop     Breakpoint = "desktop"
)

// Viewport width thresholds in pixels. A breakpoint covers widths up to but
// excluding its threshold; desktop covers everything from the tablet
// threshold upward.
const (
	SmallMobileMaxWidth = 576
	MobileMaxWidth      = 768
	TabletMaxWidth      = 1200
)

// Default column counts per breakpoint.
const (
	DesktopColumns     = 12
	TabletColumns      = 8
	MobileColumns      = 4
	SmallMobileColumns = 1
)

// Resolve maps a viewport width in pixels to the active breakpoint. It is a
// pure function with no state; callers invoke it on mount and on every
// viewport resize.
func Resolve(viewportWidth int) Breakpoint {
	switch {
	case viewportWidth < SmallMobileMaxWidth:
		return BreakpointSmallMobile
	case viewportWidth < MobileMaxWidth:
		return BreakpointMobile
	case viewportWidth < TabletMaxWidth:
		return BreakpointTablet
	default:
		return BreakpointDesktop
	}
}
