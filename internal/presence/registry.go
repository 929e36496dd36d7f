package presence

import (
	"sort"
	"sync"
)

// Role partitions the registry. Participant IDs are only unique within
// their own role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleDriver Role = "driver"
)

// Roles lists every partition in a stable order.
var Roles = []Role{RoleAdmin, RoleClient, RoleDriver}

// Registry maps (role, participantID) to the connection handle currently
// serving that participant. It is the only shared mutable state in the
// relay; every operation takes the lock once and never blocks inside it.
type Registry struct {
	mu      sync.Mutex
	entries map[Role]map[string]string
}

func NewRegistry() *Registry {
	entries := make(map[Role]map[string]string, len(Roles))
	for _, role := range Roles {
		entries[role] = make(map[string]string)
	}
	return &Registry{entries: entries}
}

// Register records participantID as reachable through handle. It is an
// upsert: re-registering overwrites the previous handle, which is how a
// reconnecting participant replaces its dead mapping.
func (r *Registry) Register(role Role, participantID, handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[role][participantID] = handle
}

// Lookup resolves a participant to its current connection handle.
func (r *Registry) Lookup(role Role, participantID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	handle, ok := r.entries[role][participantID]
	return handle, ok
}

// RemoveByHandle deletes every entry, in every role, that points at
// handle. Called on disconnect; a connection that never registered simply
// has nothing to delete. A handle registered under two identities (the
// caller's prerogative, identity is not server-verified) loses both.
func (r *Registry) RemoveByHandle(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byID := range r.entries {
		for id, h := range byID {
			if h == handle {
				delete(byID, id)
			}
		}
	}
}

// Snapshot returns the registered participant IDs per role, sorted.
func (r *Registry) Snapshot() map[Role][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Role][]string, len(r.entries))
	for role, byID := range r.entries {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[role] = ids
	}
	return out
}
