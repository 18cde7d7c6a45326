package publishsettings

import "strings"

// Attribute is a single name/value pair read from a publish profile element.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attributes keeps attributes in document order. Repeated names are kept as separate entries.
type Attributes []Attribute

// Get returns the first value stored under name, compared case-insensitively.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			return attr.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under name in insertion order.
func (a Attributes) Values(name string) []string {
	var values []string
	for _, attr := range a {
		if strings.EqualFold(attr.Name, name) {
			values = append(values, attr.Value)
		}
	}
	return values
}

// Len returns the number of stored pairs, duplicates included.
func (a Attributes) Len() int {
	return len(a)
}

func (a *Attributes) add(name, value string) {
	*a = append(*a, Attribute{Name: name, Value: value})
}
