package domain

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to an identity. The platform returns relational
// references in two shapes depending on whether the endpoint populated
// them: a bare id string, or the full identity object. Ref accepts both
// and exposes a single equality-by-id check so call sites never have to
// care which shape arrived.
type Ref struct {
	ID       string
	Identity *Identity
}

func RefFromID(id string) Ref {
	return Ref{ID: id}
}

func RefFromIdentity(identity Identity) Ref {
	return Ref{ID: identity.ID, Identity: &identity}
}

func (r Ref) IsZero() bool {
	return r.ID == "" && r.Identity == nil
}

// MatchesID reports whether the reference points at the given identity
// id, regardless of representation. An empty id never matches.
func (r Ref) MatchesID(id string) bool {
	if id == "" {
		return false
	}
	if r.Identity != nil && r.Identity.ID == id {
		return true
	}
	return r.ID == id
}

// Name returns the referenced identity's name when populated.
func (r Ref) Name() string {
	if r.Identity == nil {
		return ""
	}
	return r.Identity.Name
}

func (r Ref) Email() string {
	if r.Identity == nil {
		return ""
	}
	return r.Identity.Email
}

// UnmarshalJSON accepts a bare id string, a populated identity object,
// or null. Any other payload shape leaves the reference zero rather
// than failing the surrounding record.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Ref{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			*r = Ref{}
			return nil
		}
		*r = Ref{ID: id}
	case '{':
		var identity Identity
		if err := json.Unmarshal(trimmed, &identity); err != nil {
			*r = Ref{}
			return nil
		}
		*r = Ref{ID: identity.ID, Identity: &identity}
	default:
		*r = Ref{}
	}

	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Identity != nil {
		return json.Marshal(r.Identity)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}
