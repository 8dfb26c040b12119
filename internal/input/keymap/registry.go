package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/input/mode"
)

// Match classifies how a sequence relates to the bindings of a mode.
type Match uint8

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch Match = iota
	// Exact means the sequence is bound and nothing longer starts with it.
	Exact
	// Prefix means longer bindings start with the sequence. The sequence
	// may be bound itself; see Result.Command.
	Prefix
)

// Result is the outcome of a lookup.
type Result struct {
	Match   Match
	Command string
	Source  string
}

// Bound reports whether the looked-up sequence itself has a command.
func (r Result) Bound() bool { return r.Command != "" }

type entry struct {
	command  string
	keymap   string
	source   string
	priority int
}

type node struct {
	children map[key.Event]*node
	entries  []entry
}

func newNode() *node {
	return &node{children: make(map[key.Event]*node)}
}

func (n *node) best() (entry, bool) {
	if len(n.entries) == 0 {
		return entry{}, false
	}
	return n.entries[0], true
}

// Registry indexes every registered keymap by mode.
type Registry struct {
	keymaps map[string]*Keymap
	roots   map[mode.Mode]*node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*Keymap),
		roots:   make(map[mode.Mode]*node),
	}
}

// Register adds km, replacing any keymap with the same name.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	bindings, err := km.parse()
	if err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}
	r.Unregister(km.Name)
	r.keymaps[km.Name] = km

	root, ok := r.roots[km.Mode]
	if !ok {
		root = newNode()
		r.roots[km.Mode] = root
	}
	for _, b := range bindings {
		n := root
		for _, ev := range b.seq {
			child, ok := n.children[ev]
			if !ok {
				child = newNode()
				n.children[ev] = child
			}
			n = child
		}
		n.entries = append(n.entries, entry{
			command:  b.Command,
			keymap:   km.Name,
			source:   km.Source,
			priority: km.Priority,
		})
		sort.SliceStable(n.entries, func(i, j int) bool {
			return n.entries[i].priority > n.entries[j].priority
		})
	}
	return nil
}

// Unregister removes the keymap called name.
func (r *Registry) Unregister(name string) {
	km, ok := r.keymaps[name]
	if !ok {
		return
	}
	delete(r.keymaps, name)
	if root, ok := r.roots[km.Mode]; ok {
		prune(root, name)
	}
}

// prune drops entries owned by keymap name and reports whether n is now
// empty.
func prune(n *node, name string) bool {
	kept := n.entries[:0]
	for _, e := range n.entries {
		if e.keymap != name {
			kept = append(kept, e)
		}
	}
	n.entries = kept
	for ev, child := range n.children {
		if prune(child, name) {
			delete(n.children, ev)
		}
	}
	return len(n.entries) == 0 && len(n.children) == 0
}

// Get returns the keymap called name, or nil.
func (r *Registry) Get(name string) *Keymap { return r.keymaps[name] }

// Keymaps returns the registered keymaps sorted by name.
func (r *Registry) Keymaps() []*Keymap {
	out := make([]*Keymap, 0, len(r.keymaps))
	for _, km := range r.keymaps {
		out = append(out, km)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup classifies seq against the bindings of m.
func (r *Registry) Lookup(m mode.Mode, seq key.Sequence) Result {
	n, ok := r.roots[m]
	if !ok || len(seq) == 0 {
		return Result{}
	}
	for _, ev := range seq {
		if n = n.children[ev]; n == nil {
			return Result{}
		}
	}
	res := Result{Match: Exact}
	if len(n.children) > 0 {
		res.Match = Prefix
	}
	if e, ok := n.best(); ok {
		res.Command = e.command
		res.Source = e.source
	}
	return res
}

// Bindings returns every effective binding of m as notation → command,
// with higher-priority keymaps shadowing lower ones.
func (r *Registry) Bindings(m mode.Mode) map[string]string {
	out := make(map[string]string)
	root, ok := r.roots[m]
	if !ok {
		return out
	}
	var walk func(n *node, seq key.Sequence)
	walk = func(n *node, seq key.Sequence) {
		if e, ok := n.best(); ok {
			out[seq.String()] = e.command
		}
		for ev, child := range n.children {
			walk(child, append(seq.Clone(), ev))
		}
	}
	walk(root, nil)
	return out
}
