package keymap

// Action names understood by the demo application.
const (
	ActionQuit           = "app.quit"
	ActionUndo           = "history.undo"
	ActionRedo           = "history.redo"
	ActionSelectAll      = "selection.all"
	ActionClearSelection = "selection.clear"
	ActionSelectLeft     = "selection.left"
	ActionSelectRight    = "selection.right"
	ActionSelectHome     = "selection.home"
	ActionSelectEnd      = "selection.end"
)

// DefaultGlobalKeymap returns the application-level bindings. Editing keys
// are not listed; they go to the editor component.
func DefaultGlobalKeymap() *Keymap {
	k := NewKeymap("default-global")
	for _, b := range []Binding{
		{Keys: "Ctrl+Q", Action: ActionQuit, Description: "Quit"},
		{Keys: "Ctrl+Z", Action: ActionUndo, Description: "Undo"},
		{Keys: "Ctrl+Y", Action: ActionRedo, Description: "Redo"},
		{Keys: "Ctrl+A", Action: ActionSelectAll, Description: "Select all"},
		{Keys: "Escape", Action: ActionClearSelection, Description: "Clear selection"},
		{Keys: "Shift+Left", Action: ActionSelectLeft, Description: "Extend selection left"},
		{Keys: "Shift+Right", Action: ActionSelectRight, Description: "Extend selection right"},
		{Keys: "Shift+Home", Action: ActionSelectHome, Description: "Extend selection to line start"},
		{Keys: "Shift+End", Action: ActionSelectEnd, Description: "Extend selection to line end"},
	} {
		if err := k.AddBinding(b); err != nil {
			panic(err)
		}
	}
	return k
}
