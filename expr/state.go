package expr

import (
	"strings"

	"github.com/ezrec/jcasm/object"
)

// Registers looks up architectural register names.
type Registers interface {
	Register(name string) (id int, ok bool)
}

// State is the context expressions are evaluated in.
type State struct {
	Labels    *object.LabelTable // Labels defined so far. May be nil.
	Section   *object.Section    // Section of the statement being evaluated.
	Registers Registers          // Register names. May be nil.
}

func (state *State) register(name string) (reg Register, ok bool) {
	if state == nil || state.Registers == nil {
		return
	}
	id, ok := state.Registers.Register(name)
	if !ok {
		return
	}
	reg = Register{Name: strings.ToUpper(name), ID: id}
	return
}

func (state *State) label(name string) (lo object.LabelOffset, ok bool) {
	if state == nil {
		return
	}
	return state.Labels.Lookup(name)
}

func (state *State) section() *object.Section {
	if state == nil {
		return nil
	}
	return state.Section
}
