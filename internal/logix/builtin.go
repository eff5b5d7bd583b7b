package logix

// builtins maps predefined type names to constructors of their zero value.
var builtins = map[string]func() LogixType{
	StringTypeName: func() LogixType { return NewStringType(StringTypeName, DefaultStringCapacity) },
	"TIMER":        func() LogixType { return NewTimer() },
	"COUNTER":      func() LogixType { return NewCounter() },
	"CONTROL":      func() LogixType { return NewControl() },
}

func init() {
	for _, k := range AtomicKinds {
		builtins[k.String()] = func() LogixType { return Zero(k) }
	}
}

// Builtin returns the zero value of a built-in atomic or predefined type.
// The name must match exactly.
func Builtin(name string) (LogixType, bool) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// BuiltinNames lists every built-in type name.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	return names
}

func predefined(name string, members ...Member) Structure {
	return NewStructure(name, DataTypeClassPredefined, members...)
}

func boolMembers(names ...string) []Member {
	members := make([]Member, len(names))
	for i, n := range names {
		members[i] = Member{Name: n, Type: NewBool(false)}
	}
	return members
}

// NewTimer returns a zero TIMER.
func NewTimer() Structure {
	return predefined("TIMER", append([]Member{
		{Name: "PRE", Type: NewDint(0)},
		{Name: "ACC", Type: NewDint(0)},
	}, boolMembers("EN", "TT", "DN")...)...)
}

// NewCounter returns a zero COUNTER.
func NewCounter() Structure {
	return predefined("COUNTER", append([]Member{
		{Name: "PRE", Type: NewDint(0)},
		{Name: "ACC", Type: NewDint(0)},
	}, boolMembers("CU", "CD", "DN", "OV", "UN")...)...)
}

// NewControl returns a zero CONTROL.
func NewControl() Structure {
	return predefined("CONTROL", append([]Member{
		{Name: "LEN", Type: NewDint(0)},
		{Name: "POS", Type: NewDint(0)},
	}, boolMembers("EN", "EU", "DN", "EM", "ER", "UL", "IN", "FD")...)...)
}
