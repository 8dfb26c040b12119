package keymap

import (
	"fmt"

	"github.com/dshills/modal/internal/input/mode"
)

// Mapping is a user remapping as supplied by configuration.
type Mapping struct {
	Mode    string
	Keys    string
	Command string
}

// UserKeymapName returns the name of the user keymap for m.
func UserKeymapName(m mode.Mode) string {
	return "user-" + m.String()
}

// FromMappings groups mappings into one user keymap per mode.
func FromMappings(source string, mappings []Mapping) ([]*Keymap, error) {
	byMode := make(map[mode.Mode]*Keymap)
	var order []mode.Mode
	for i, m := range mappings {
		md, ok := mode.Parse(m.Mode).Get()
		if !ok {
			return nil, fmt.Errorf("mapping %d (%s): unknown mode %q", i, m.Keys, m.Mode)
		}
		km, ok := byMode[md]
		if !ok {
			km = &Keymap{
				Name:     UserKeymapName(md),
				Mode:     md,
				Priority: PriorityUser,
				Source:   source,
			}
			byMode[md] = km
			order = append(order, md)
		}
		km.Add(m.Keys, m.Command)
	}
	out := make([]*Keymap, 0, len(order))
	for _, md := range order {
		if err := byMode[md].Validate(); err != nil {
			return nil, err
		}
		out = append(out, byMode[md])
	}
	return out, nil
}

// ReplaceUser swaps every user keymap in r for the keymaps built from
// mappings. On error the registry is left unchanged.
func ReplaceUser(r *Registry, source string, mappings []Mapping) error {
	kms, err := FromMappings(source, mappings)
	if err != nil {
		return err
	}
	for _, m := range mode.All {
		r.Unregister(UserKeymapName(m))
	}
	for _, km := range kms {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// AddUser adds a single user mapping on top of the existing user keymap
// for its mode.
func AddUser(r *Registry, m Mapping) error {
	md, ok := mode.Parse(m.Mode).Get()
	if !ok {
		return fmt.Errorf("unknown mode %q", m.Mode)
	}
	name := UserKeymapName(md)
	km := &Keymap{Name: name, Mode: md, Priority: PriorityUser, Source: "user"}
	if prev := r.Get(name); prev != nil {
		km.Source = prev.Source
		for _, b := range prev.Bindings {
			if b.Keys != m.Keys {
				km.Bindings = append(km.Bindings, b)
			}
		}
	}
	km.Add(m.Keys, m.Command)
	return r.Register(km)
}
