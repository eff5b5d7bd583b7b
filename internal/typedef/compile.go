package typedef

import (
	"fmt"
	"regexp"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/l5x/internal/logix"
)

// Families of a DataType.
const (
	FamilyNone   = "NoFamily"
	FamilyString = "StringFamily"
)

// External access levels.
const (
	AccessReadWrite = "Read/Write"
	AccessReadOnly  = "Read Only"
	AccessNone      = "None"
)

// maxNameLen is the longest tag or type name the controller accepts.
const maxNameLen = 40

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Definition is a compiled user-defined type.
type Definition struct {
	Name        string
	Description string
	Family      string
	// Capacity is the DATA length of a StringFamily type.
	Capacity int
	Members  []Member
}

// Member is one declared member, before BOOL packing.
type Member struct {
	Name           string
	DataType       string
	Dimension      int
	Radix          logix.Radix
	Description    string
	ExternalAccess string
	Hidden         bool
}

// IsString reports whether the definition is a string type.
func (d *Definition) IsString() bool { return d.Family == FamilyString }

// Compile parses one type definition. The value should be the type struct
// itself, e.g.:
//
//	v := ctx.CompileString(src)
//	def, err := Compile(v.LookupPath(cue.ParsePath("type.Motor")))
func Compile(v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &Definition{Family: FamilyNone}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		def.Name = labels[len(labels)-1].Unquoted()
	}
	if err := checkName("name", def.Name, v); err != nil {
		return nil, err
	}

	var err error
	if def.Description, err = optionalString(v, "description"); err != nil {
		return nil, err
	}
	if family, err := optionalString(v, "family"); err != nil {
		return nil, err
	} else if family != "" {
		def.Family = family
	}

	switch def.Family {
	case FamilyString:
		if err := compileString(def, v); err != nil {
			return nil, err
		}
		return def, nil
	case FamilyNone:
	default:
		return nil, &CompileError{Field: "family", Message: fmt.Sprintf("unknown family %q", def.Family), Pos: v.Pos()}
	}

	membersVal := v.LookupPath(cue.ParsePath("members"))
	if !membersVal.Exists() {
		return nil, &CompileError{Field: "members", Message: "members are required", Pos: v.Pos()}
	}
	iter, err := membersVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	seen := make(map[string]bool)
	for iter.Next() {
		m, err := compileMember(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return nil, err
		}
		key := strings.ToUpper(m.Name)
		if seen[key] {
			return nil, &CompileError{Field: "members." + m.Name, Message: "duplicate member name", Pos: iter.Value().Pos()}
		}
		seen[key] = true
		def.Members = append(def.Members, m)
	}
	if len(def.Members) == 0 {
		return nil, &CompileError{Field: "members", Message: "at least one member is required", Pos: membersVal.Pos()}
	}
	return def, nil
}

func compileString(def *Definition, v cue.Value) error {
	if v.LookupPath(cue.ParsePath("members")).Exists() {
		return &CompileError{Field: "members", Message: "string types declare capacity, not members", Pos: v.Pos()}
	}
	def.Capacity = logix.DefaultStringCapacity
	capVal := v.LookupPath(cue.ParsePath("capacity"))
	if !capVal.Exists() {
		return nil
	}
	n, err := capVal.Int64()
	if err != nil {
		return formatCUEError(err)
	}
	if n <= 0 {
		return &CompileError{Field: "capacity", Message: "capacity must be positive", Pos: capVal.Pos()}
	}
	def.Capacity = int(n)
	return nil
}

func compileMember(name string, v cue.Value) (Member, error) {
	field := "members." + name
	m := Member{Name: name, ExternalAccess: AccessReadWrite}
	if err := checkName(field, name, v); err != nil {
		return m, err
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return m, &CompileError{Field: field + ".type", Message: "type is required", Pos: v.Pos()}
	}
	dt, err := typeVal.String()
	if err != nil {
		return m, formatCUEError(err)
	}
	if strings.EqualFold(dt, "BIT") {
		return m, &CompileError{Field: field + ".type", Message: "BIT is reserved; declare BOOL", Pos: typeVal.Pos()}
	}
	m.DataType = dt

	if dimVal := v.LookupPath(cue.ParsePath("dimension")); dimVal.Exists() {
		n, err := dimVal.Int64()
		if err != nil {
			return m, formatCUEError(err)
		}
		if n < 0 {
			return m, &CompileError{Field: field + ".dimension", Message: "dimension must not be negative", Pos: dimVal.Pos()}
		}
		if dt == logix.KindBool.String() && n%32 != 0 {
			return m, &CompileError{Field: field + ".dimension", Message: "BOOL arrays must be a multiple of 32", Pos: dimVal.Pos()}
		}
		m.Dimension = int(n)
	}

	m.Radix = logix.DefaultRadix(dt)
	radix, err := optionalString(v, "radix")
	if err != nil {
		return m, err
	}
	if radix != "" {
		r, err := logix.ParseRadix(radix)
		if err != nil {
			return m, &CompileError{Field: field + ".radix", Message: err.Error(), Pos: v.Pos()}
		}
		if k, ok := logix.LookupKind(dt); ok && !r.Supports(k) {
			return m, &CompileError{Field: field + ".radix", Message: fmt.Sprintf("radix %s does not support %s", r, dt), Pos: v.Pos()}
		}
		m.Radix = r
	}

	if m.Description, err = optionalString(v, "description"); err != nil {
		return m, err
	}
	access, err := optionalString(v, "external_access")
	if err != nil {
		return m, err
	}
	switch access {
	case "":
	case AccessReadWrite, AccessReadOnly, AccessNone:
		m.ExternalAccess = access
	default:
		return m, &CompileError{Field: field + ".external_access", Message: fmt.Sprintf("unknown access %q", access), Pos: v.Pos()}
	}

	if hidden := v.LookupPath(cue.ParsePath("hidden")); hidden.Exists() {
		if m.Hidden, err = hidden.Bool(); err != nil {
			return m, formatCUEError(err)
		}
	}
	return m, nil
}

func checkName(field, name string, v cue.Value) error {
	switch {
	case !namePattern.MatchString(name):
		return &CompileError{Field: field, Message: fmt.Sprintf("invalid name %q", name), Pos: v.Pos()}
	case len(name) > maxNameLen:
		return &CompileError{Field: field, Message: fmt.Sprintf("name %q exceeds %d characters", name, maxNameLen), Pos: v.Pos()}
	case strings.Contains(name, "__") || strings.HasSuffix(name, "_"):
		return &CompileError{Field: field, Message: fmt.Sprintf("name %q has consecutive or trailing underscores", name), Pos: v.Pos()}
	}
	return nil
}

func optionalString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}
