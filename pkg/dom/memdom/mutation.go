package memdom

import "sync"

// MutationType is the kind of change a Mutation describes.
type MutationType string

const (
	MutationChildList     MutationType = "childList"
	MutationAttributes    MutationType = "attributes"
	MutationCharacterData MutationType = "characterData"
)

// Mutation describes one change to the document, modelled on DOM
// MutationRecord. Node IDs are the values returned by ID().
type Mutation struct {
	Type MutationType `json:"type"`

	// Target is the ID of the node that changed.
	Target uint64 `json:"target"`

	// Node is the target's name ("svg", "#text").
	Node string `json:"node"`

	// Name and Namespace identify the attribute for attribute mutations.
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`

	OldValue string `json:"oldValue,omitempty"`
	Value    string `json:"value,omitempty"`

	// Deleted is set when an attribute was removed.
	Deleted bool `json:"deleted,omitempty"`

	// Added and Removed are child node IDs for childList mutations.
	Added   uint64 `json:"added,omitempty"`
	Removed uint64 `json:"removed,omitempty"`
}

// Recorder collects mutations; see Document.Record.
type Recorder struct {
	mu        sync.Mutex
	mutations []Mutation
	cancel    func()
}

func (r *Recorder) add(m Mutation) {
	r.mu.Lock()
	r.mutations = append(r.mutations, m)
	r.mu.Unlock()
}

// Stop stops recording. Mutations stays readable.
func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Mutations returns a copy of what was recorded so far.
func (r *Recorder) Mutations() []Mutation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Mutation, len(r.mutations))
	copy(out, r.mutations)
	return out
}

// Len returns how many mutations were recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mutations)
}

// Reset drops recorded mutations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.mutations = nil
	r.mu.Unlock()
}
