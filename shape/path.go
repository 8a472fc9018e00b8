package shape

import "strconv"

// Join combines a parent path key with a member name.
// An empty parent yields the member name alone; member names beginning
// with '[' attach without a separator.
func Join(parent, member string) string {
	if parent == "" {
		return member
	}
	if member == "" {
		return parent
	}
	if member[0] == '[' {
		return parent + member
	}
	return parent + "." + member
}

// Index combines a parent path key with a 0-based element index,
// producing keys like "items[0]".
func Index(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
