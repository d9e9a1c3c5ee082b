package lv

// defaultPalette is the fixed set of tag colors handed out to
// subcontractors for consistent visual identification.
var defaultPalette = []string{
	"#1565C0",
	"#2E7D32",
	"#C62828",
	"#6A1B9A",
	"#EF6C00",
	"#00838F",
	"#4E342E",
	"#546E7A",
}

// ColorMap assigns each subcontractor a stable color from a fixed palette
// in first-seen order. It is an explicit value passed through the call
// chain rather than package state, so every refresh cycle starts from the
// same assignment.
type ColorMap struct {
	palette  []string
	assigned map[string]string
	next     int
}

// NewColorMap creates a ColorMap over the default palette.
func NewColorMap() *ColorMap {
	return &ColorMap{
		palette:  defaultPalette,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the color assigned to a company, assigning the next
// palette entry on first encounter. The palette wraps around when more
// companies appear than it has entries.
func (c *ColorMap) ColorFor(company string) string {
	if color, ok := c.assigned[company]; ok {
		return color
	}
	color := c.palette[c.next%len(c.palette)]
	c.assigned[company] = color
	c.next++
	return color
}
