package gui

// Action is a toolbar button label
type Action string

const (
	ActionPrevious Action = "Previous"
	ActionNext     Action = "Next"
	ActionFlip     Action = "Flip"
	ActionReset    Action = "Reset"
	ActionHideMenu Action = "Hide Menu"
	ActionExit     Action = "Exit"
)
