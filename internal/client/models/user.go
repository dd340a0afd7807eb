package models

import (
	"encoding/json"
	"time"
)

// User is the authenticated identity as returned by the API. Fields the
// client does not model are kept verbatim in Extra.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	Extra     map[string]json.RawMessage
}

type userWire struct {
	ID        string     `json:"_id,omitempty"`
	AltID     string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// userKnownKeys are consumed by userWire. "token" is listed because auth
// responses inline the credential next to the user fields and it must
// never end up in the identity.
var userKnownKeys = []string{"_id", "id", "name", "email", "role", "createdAt", "token"}

func (u *User) UnmarshalJSON(b []byte) error {
	var w userWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	for _, k := range userKnownKeys {
		delete(all, k)
	}

	*u = User{ID: w.ID, Name: w.Name, Email: w.Email, Role: w.Role}
	if u.ID == "" {
		u.ID = w.AltID
	}
	if w.CreatedAt != nil {
		u.CreatedAt = *w.CreatedAt
	}
	if len(all) > 0 {
		u.Extra = all
	}
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Extra)+5)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["_id"] = u.ID
	out["name"] = u.Name
	out["email"] = u.Email
	if u.Role != "" {
		out["role"] = u.Role
	}
	if !u.CreatedAt.IsZero() {
		out["createdAt"] = u.CreatedAt
	}
	return json.Marshal(out)
}

// Clone returns a copy that shares nothing mutable with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(u.Extra))
		for k, v := range u.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// AuthPayload is the data of a signup/login response: the user fields with
// the credential inlined.
type AuthPayload struct {
	Token string
	User  User
}

func (p *AuthPayload) UnmarshalJSON(b []byte) error {
	var t struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	p.Token = t.Token
	return json.Unmarshal(b, &p.User)
}
