package logix

import "strings"

// Structure is an ordered set of named members fixed at construction.
type Structure struct {
	name    string
	class   DataTypeClass
	members []Member
}

// NewStructure creates a structure. The member slice is copied.
func NewStructure(name string, class DataTypeClass, members ...Member) Structure {
	return Structure{name: name, class: class, members: append([]Member(nil), members...)}
}

func (Structure) logixType() {}

// Name returns the data type name.
func (s Structure) Name() string { return s.name }

// Class returns ClassStructure.
func (Structure) Class() Class { return ClassStructure }

// DataTypeClass returns where the structure is defined.
func (s Structure) DataTypeClass() DataTypeClass { return s.class }

// Members returns a copy of the members.
func (s Structure) Members() []Member { return append([]Member(nil), s.members...) }

// Member finds a member by name, ignoring case as Logix does.
func (s Structure) Member(name string) (Member, bool) {
	i := s.indexOf(name)
	if i < 0 {
		return Member{}, false
	}
	return s.members[i], true
}

func (s Structure) indexOf(name string) int {
	for i, m := range s.members {
		if strings.EqualFold(m.Name, name) {
			return i
		}
	}
	return -1
}

// With returns a copy with the named member replaced by v. The new value
// must match the member's type; atomics are converted to the member kind.
func (s Structure) With(name string, v LogixType) (Structure, error) {
	i := s.indexOf(name)
	if i < 0 {
		return s, memberError(s.name, name, "no such member")
	}
	nv, err := assign(s.members[i].Type, v)
	if err != nil {
		return s, err
	}
	members := append([]Member(nil), s.members...)
	members[i] = Member{Name: members[i].Name, Type: nv}
	return Structure{name: s.name, class: s.class, members: members}, nil
}
