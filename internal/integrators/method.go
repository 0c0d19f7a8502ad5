package integrators

import (
	"fmt"
	"strings"
)

// Method selects a stepping scheme.
type Method int

const (
	Euler Method = iota + 1
	EulerCromer
	EulerRichardson
	Verlet
)

var methodNames = map[Method]string{
	Euler:           "euler",
	EulerCromer:     "euler-cromer",
	EulerRichardson: "euler-richardson",
	Verlet:          "verlet",
}

// Methods lists every scheme in order of increasing accuracy.
func Methods() []Method {
	return []Method{Euler, EulerCromer, EulerRichardson, Verlet}
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod accepts the canonical names plus a few common spellings.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "euler", "e", "1":
		return Euler, nil
	case "euler-cromer", "eulercromer", "ec", "2":
		return EulerCromer, nil
	case "euler-richardson", "eulerrichardson", "er", "3":
		return EulerRichardson, nil
	case "verlet", "velocity-verlet", "v", "4":
		return Verlet, nil
	}
	return 0, fmt.Errorf("unknown method: %q", s)
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid method %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
