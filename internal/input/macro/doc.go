// Package macro records key sequences into registers and plays them back.
//
// A Recorder captures every key the editor dispatches while recording is
// active. Stopping hands the captured sequence back to the caller, which
// stores it in the register store like any other register content.
//
// A Player is a key source: while it has keys left, the event loop reads
// from it instead of the terminal, so replayed keys go through exactly the
// same dispatch as typed ones. Playing a macro from inside a macro pushes a
// new frame; the stack is bounded by MaxDepth.
//
// # Persistence
//
// Recorded macros can be saved to and loaded from a YAML file so they
// survive between sessions.
package macro
