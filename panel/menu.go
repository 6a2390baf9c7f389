package panel

// Menu is a titled list with a wrapping cursor
type Menu struct {
	Title  string
	Items  []string
	cursor int
}

// Main menu entries
const (
	ItemThread = 0
	ItemCopper = 1
)

// Submenu entries
const (
	ItemManual = 0
	ItemAuto   = 1
	ItemBack   = 2
)

// NewMainMenu returns the material menu
func NewMainMenu() *Menu {
	return &Menu{Title: "Menu:", Items: []string{"Thread", "Copper"}}
}

// NewSubMenu returns the mode menu for a material entry
func NewSubMenu(material int) *Menu {
	title := "Thread:"
	if material == ItemCopper {
		title = "Copper:"
	}
	return &Menu{Title: title, Items: []string{"Manual", "Auto", "Back"}}
}

// Move shifts the cursor one entry and wraps at both ends
func (m *Menu) Move(d Direction) bool {
	n := len(m.Items)
	if d == None || n == 0 {
		return false
	}
	m.cursor = (m.cursor + int(d) + n) % n
	return true
}

// Selected returns the cursor index
func (m *Menu) Selected() int {
	return m.cursor
}

// Reset moves the cursor to the first entry
func (m *Menu) Reset() {
	m.cursor = 0
}

// Lines renders the title followed by the marked entries
func (m *Menu) Lines() []string {
	lines := make([]string, 0, len(m.Items)+1)
	lines = append(lines, m.Title)
	for i, item := range m.Items {
		if i == m.cursor {
			lines = append(lines, "> "+item)
		} else {
			lines = append(lines, "  "+item)
		}
	}
	return lines
}
