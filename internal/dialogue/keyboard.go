package dialogue

// Keyboard describes the reply keyboard attached to a reply. The transport
// decides how to render it.
type Keyboard struct {
	Rows [][]string
	// RequestContact turns the first button into a phone-share request.
	RequestContact bool
	OneTime        bool
	// Remove hides any keyboard currently shown.
	Remove bool
}

// Reply is what the engine wants sent back. A nil Keyboard leaves the
// current keyboard untouched.
type Reply struct {
	Text     string
	Keyboard *Keyboard
}

// MainMenu is the persistent two-button menu.
func MainMenu() *Keyboard {
	return &Keyboard{Rows: [][]string{{StartButton, EditButton}}}
}

// ShareContact asks the client to offer its phone-share button.
func ShareContact() *Keyboard {
	return &Keyboard{Rows: [][]string{{ShareButton}}, RequestContact: true}
}

// PhoneChoice lists phones one per row and hides after a tap.
func PhoneChoice(phones []string) *Keyboard {
	rows := make([][]string, 0, len(phones))
	for _, p := range phones {
		rows = append(rows, []string{p})
	}
	return &Keyboard{Rows: rows, OneTime: true}
}

// RemoveKeyboard hides the current keyboard.
func RemoveKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}
