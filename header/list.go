package header

// List is the ordered set of fields of one header block. Lookups ignore case
// and keep the original order.
type List []Field

// Get returns the first field named name.
func (l List) Get(name string) (Field, bool) {
	for _, f := range l {
		if f.Is(name) {
			return f, true
		}
	}
	return Field{}, false
}

// FirstValue returns the decoded value of the first field named name.
func (l List) FirstValue(name string) (string, bool) {
	f, ok := l.Get(name)
	if !ok {
		return "", false
	}
	return f.Value(), true
}

// All returns every field named name.
func (l List) All(name string) List {
	var out List
	for _, f := range l {
		if f.Is(name) {
			out = append(out, f)
		}
	}
	return out
}

// Values returns the decoded values of every field named name.
func (l List) Values(name string) []string {
	var out []string
	for _, f := range l {
		if f.Is(name) {
			out = append(out, f.Value())
		}
	}
	return out
}

// Has reports whether a field named name exists.
func (l List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}
