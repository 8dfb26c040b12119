// Package keymap maps key sequences to command names per mode.
//
// Default bindings and user mappings are both Keymaps registered in one
// Registry, so they share a single resolution path. A keymap with a
// higher Priority wins when two keymaps bind the same sequence in the
// same mode; user keymaps are registered above the defaults.
//
// The Resolver feeds keys one at a time through the Registry. A key that
// completes a binding yields its command. A key that is a prefix of a
// longer binding is held until the sequence completes, stops matching,
// or sits idle longer than the timeout; held keys are then resolved to the
// longest bound prefix and the rest are handed back to be fed again.
//
//	r := keymap.NewResolver(reg, clock.System{}, time.Second)
//	for _, res := range r.Feed(mode.Normal, ev) {
//		// run res.Command, or treat res.Keys as unmapped
//	}
package keymap
