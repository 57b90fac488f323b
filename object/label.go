package object

import (
	"iter"
)

// LabelOffset is where a label was defined.
type LabelOffset struct {
	Section *Section
	Offset  int
}

// LabelTable maps label names to their definitions, remembering the order
// in which they were discovered.
type LabelTable struct {
	names   []string
	offsets map[string]LabelOffset
}

// NewLabelTable creates an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{
		offsets: make(map[string]LabelOffset),
	}
}

// Define records a label. A redefinition moves the label but keeps its
// discovery position, and reports ok as false.
func (lt *LabelTable) Define(name string, sect *Section, offset int) (ok bool) {
	_, exists := lt.offsets[name]
	if !exists {
		lt.names = append(lt.names, name)
	}
	lt.offsets[name] = LabelOffset{Section: sect, Offset: offset}
	return !exists
}

// Lookup returns the definition of a label. A nil table is empty.
func (lt *LabelTable) Lookup(name string) (lo LabelOffset, ok bool) {
	if lt == nil {
		return
	}
	lo, ok = lt.offsets[name]
	return
}

// Len is the number of labels defined.
func (lt *LabelTable) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.names)
}

// All iterates over the labels in discovery order.
func (lt *LabelTable) All() iter.Seq2[string, LabelOffset] {
	return func(yield func(string, LabelOffset) bool) {
		if lt == nil {
			return
		}
		for _, name := range lt.names {
			if !yield(name, lt.offsets[name]) {
				return
			}
		}
	}
}
