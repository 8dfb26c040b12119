package keymap

import (
	"fmt"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
)

// Priorities of the built-in layers.
const (
	PriorityDefault = 0
	PriorityUser    = 100
)

// Binding maps a key sequence to a command name.
type Binding struct {
	// Keys is the sequence in key notation, e.g. "gU" or "<C-r>".
	Keys string

	// Command is the command the editor runs, e.g. "operator.delete".
	Command string

	Description string
}

// Keymap is a named set of bindings for one mode.
type Keymap struct {
	Name     string
	Mode     mode.Mode
	Priority int

	// Source says where the keymap came from: "default", "user" or a file.
	Source string

	Bindings []Binding
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string, m mode.Mode) *Keymap {
	return &Keymap{Name: name, Mode: m}
}

// Add appends a binding.
func (k *Keymap) Add(keys, command string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Command: command})
	return k
}

// Validate checks every binding parses and names a command.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

type parsedBinding struct {
	Binding
	seq key.Sequence
}

func (k *Keymap) parse() ([]parsedBinding, error) {
	out := make([]parsedBinding, 0, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Command == "" {
			return nil, fmt.Errorf("binding %d (%s): empty command", i, b.Keys)
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		out = append(out, parsedBinding{Binding: b, seq: seq})
	}
	return out, nil
}
