// Package viz draws stage frames in the terminal.
//
// A frame is a slice of [stage.Drawable] values in paint order. [Render]
// maps the 14.22×8 scene onto a character grid: shapes go to a braille
// [Canvas], text and typeset math are laid over it cell by cell.
//
//   - [Render]: one frame as a lipgloss-styled string
//   - [ConsolePlayer]: a [stage.Player] that prints settled frames
//   - Themes: chalk, paper, retro, ocean
package viz
