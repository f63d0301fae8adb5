package grid

// Config holds grid presentation parameters: the column count for each
// breakpoint and the pixel geometry used to convert pointer coordinates to
// cells. A Config is immutable during a gesture; it changes only on an
// explicit configuration update or a breakpoint change.
type Config struct {
	DesktopColumns     int `toml:"desktop_columns" json:"desktopColumns"`
	TabletColumns      int `toml:"tablet_columns" json:"tabletColumns"`
	MobileColumns      int `toml:"mobile_columns" json:"mobileColumns"`
	SmallMobileColumns int `toml:"small_mobile_columns" json:"smallMobileColumns"`

	// Gap and Padding are pixel spacing between tiles and around the grid.
	// RowHeight is the pixel height of one grid row.
	Gap       int `toml:"gap" json:"gap"`
	Padding   int `toml:"padding" json:"padding"`
	RowHeight int `toml:"row_height" json:"rowHeight"`
}

// DefaultConfig returns the standard grid configuration: 12/8/4/1 columns
// across the four breakpoints, 16px gap and padding, 100px rows.
func DefaultConfig() Config {
	return Config{
		DesktopColumns:     DesktopColumns,
		TabletColumns:      TabletColumns,
		MobileColumns:      MobileColumns,
		SmallMobileColumns: SmallMobileColumns,
		Gap:                16,
		Padding:            16,
		RowHeight:          100,
	}
}

// Columns returns the column count for the given breakpoint. Unknown
// breakpoints get the desktop column count.
func (c Config) Columns(bp Breakpoint) int {
	switch bp {
	case BreakpointSmallMobile:
		return c.SmallMobileColumns
	case BreakpointMobile:
		return c.MobileColumns
	case BreakpointTablet:
		return c.TabletColumns
	default:
		return c.DesktopColumns
	}
}

// ColumnsFor resolves a viewport width directly to a column count,
// combining [Resolve] with [Config.Columns].
func (c Config) ColumnsFor(viewportWidth int) int {
	return c.Columns(Resolve(viewportWidth))
}
