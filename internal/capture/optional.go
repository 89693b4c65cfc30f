package capture

import "strconv"

// Optional is a column-sized value that may be unset.
type Optional struct {
	Value uint32
	Set   bool
}

// Some returns a set Optional holding v.
func Some(v uint32) Optional {
	return Optional{Value: v, Set: true}
}

// None is the unset Optional.
var None = Optional{}

// Get returns the value and whether it is set.
func (o Optional) Get() (uint32, bool) {
	return o.Value, o.Set
}

func (o Optional) String() string {
	if !o.Set {
		return "none"
	}
	return strconv.FormatUint(uint64(o.Value), 10)
}
