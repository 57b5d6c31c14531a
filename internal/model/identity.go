package model

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Need methods.
const (
	NeedMethodID     = "id"
	NeedMethodRole   = "role"
	NeedMethodMember = "member"
)

// Need is an atomic capability used in set-based permission checks.
type Need struct {
	Method string `json:"method"`
	Value  string `json:"value"`
}

// UserNeed is provided by the user with the given id.
func UserNeed(id int64) Need {
	return Need{Method: NeedMethodID, Value: strconv.FormatInt(id, 10)}
}

// RoleNeed is provided by holders of the named role.
func RoleNeed(name string) Need {
	return Need{Method: NeedMethodRole, Value: name}
}

// RoleMemberNeed is provided by members of the role with the given id.
func RoleMemberNeed(roleID int64) Need {
	return Need{Method: NeedMethodMember, Value: strconv.FormatInt(roleID, 10)}
}

// Identity is the capability set of an authenticated user.
type Identity struct {
	provides map[Need]struct{}
}

// NewIdentity builds an identity providing the given needs.
func NewIdentity(needs ...Need) Identity {
	id := Identity{provides: make(map[Need]struct{}, len(needs))}
	for _, n := range needs {
		id.provides[n] = struct{}{}
	}
	return id
}

// Add inserts need into the set.
func (i *Identity) Add(need Need) {
	if i.provides == nil {
		i.provides = make(map[Need]struct{})
	}
	i.provides[need] = struct{}{}
}

// Provides reports whether need is in the set.
func (i Identity) Provides(need Need) bool {
	_, ok := i.provides[need]
	return ok
}

// Len returns the number of needs in the set.
func (i Identity) Len() int {
	return len(i.provides)
}

// Needs returns the set as a sorted slice.
func (i Identity) Needs() []Need {
	out := make([]Need, 0, len(i.provides))
	for n := range i.provides {
		out = append(out, n)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Method != out[b].Method {
			return out[a].Method < out[b].Method
		}
		return out[a].Value < out[b].Value
	})
	return out
}

func (i Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Needs())
}

func (i *Identity) UnmarshalJSON(data []byte) error {
	var needs []Need
	if err := json.Unmarshal(data, &needs); err != nil {
		return err
	}
	*i = NewIdentity(needs...)
	return nil
}

// Principal is the authenticated caller bound to a request.
type Principal struct {
	User        User
	Identity    Identity
	AccessKeyID *int64
}
