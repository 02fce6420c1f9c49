package entities

// ControlKind identifies the category of form control a resolution
// request is asking for.
type ControlKind string

const (
	KindInput  ControlKind = "input"
	KindRadio  ControlKind = "radio"
	KindSelect ControlKind = "select or combobox"
)
