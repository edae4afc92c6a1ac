package store

import "strings"

// FragmentPrefix is the address-fragment prefix that names the active configuration.
const FragmentPrefix = "#/webinar/"

// Fragment returns the address fragment for a configuration id.
func Fragment(id string) string {
	return FragmentPrefix + id
}

// ParseFragment extracts the configuration id from "#/webinar/<id>".
// The leading "#" is optional.
func ParseFragment(fragment string) (string, bool) {
	fragment = strings.TrimSpace(fragment)
	if !strings.HasPrefix(fragment, "#") {
		fragment = "#" + fragment
	}
	id, ok := strings.CutPrefix(fragment, FragmentPrefix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// Navigator receives the fragment to mirror after an operator-driven selection.
// Navigate is called with the store lock held, in the order the selections are
// applied. It must not block or call back into the Store.
type Navigator interface {
	Navigate(fragment string)
}

// NopNavigator discards navigation.
type NopNavigator struct{}

// Navigate does nothing.
func (NopNavigator) Navigate(string) {}
