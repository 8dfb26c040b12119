// Package terminal connects the editor to a terminal through tcell.
//
// Source polls key presses and resizes from a tcell.Screen and implements
// input.KeySource. Screen implements editor.Renderer, drawing the buffer,
// the selection, search matches and the status line.
package terminal
