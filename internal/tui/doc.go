// Package tui is a terminal presentation layer for a falling-logo field.
//
// Terminal cells are mapped onto viewport pixels, so the field runs with the
// same sizes and speeds it would use in a browser. Mouse motion is fed into
// the field as the pointer and highlighted logos are drawn in bold.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Send all logos back above the top edge
//	?     - Toggle help
//	Q     - Quit
package tui
