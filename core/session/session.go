package session

import "maps"

// Session is a server-held record addressed by an opaque key. The key doubles
// as the externally visible session token; everything else is server-side
// state. All timestamps are unix epoch milliseconds.
type Session struct {
	// Key is the unique session identifier, immutable after creation.
	Key string `json:"_key" bson:"_id"`

	// UserID identifies the authenticated user bound to this session.
	// A nil pointer means the session is anonymous; the field is omitted
	// from serialized documents rather than written as null.
	UserID *string `json:"uid,omitempty" bson:"uid,omitempty"`

	// UserData is the opaque user payload copied in when a user is bound.
	UserData map[string]any `json:"userData" bson:"userData"`

	// SessionData is free-form caller payload.
	SessionData map[string]any `json:"sessionData" bson:"sessionData"`

	Created    int64 `json:"created" bson:"created"`
	LastAccess int64 `json:"lastAccess" bson:"lastAccess"`
	LastUpdate int64 `json:"lastUpdate" bson:"lastUpdate"`
}

// User carries the identity and payload of an authenticated user for binding
// to a session via SetUser.
type User struct {
	ID   string
	Data map[string]any
}

// ForClient returns the externally visible session token.
func (s *Session) ForClient() string {
	return s.Key
}

// SetUser binds the given user to the session, overwriting any prior binding.
// A nil user unbinds: UserID becomes absent and UserData is reset to an empty
// map. The mutation is in-memory only; callers persist it with Manager.Save.
func (s *Session) SetUser(u *User) *Session {
	if u != nil {
		id := u.ID
		s.UserID = &id
		s.UserData = maps.Clone(u.Data)
		if s.UserData == nil {
			s.UserData = map[string]any{}
		}
	} else {
		s.UserID = nil
		s.UserData = map[string]any{}
	}
	return s
}

// IsAuthenticated returns true if the session is bound to a user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// clone returns a deep copy safe to hand across goroutine boundaries.
// Values stored inside the data maps are copied by reference.
func (s *Session) clone() *Session {
	c := *s
	if s.UserID != nil {
		id := *s.UserID
		c.UserID = &id
	}
	c.UserData = maps.Clone(s.UserData)
	c.SessionData = maps.Clone(s.SessionData)
	return &c
}

// AnchorValue resolves the timestamp the TTL countdown is anchored to.
// Unknown anchor names and zero-valued fields fall back to Created. Store
// implementations use it to evaluate expiry cutoffs outside this package.
func AnchorValue(s *Session, anchor string) int64 {
	var v int64
	switch anchor {
	case AnchorLastAccess:
		v = s.LastAccess
	case AnchorLastUpdate:
		v = s.LastUpdate
	}
	if v == 0 {
		v = s.Created
	}
	return v
}
