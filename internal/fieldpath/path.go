// Package fieldpath implements spec.md §4.C: structured errors annotated
// with a JSON-path-style field path (rooted at "$") and the printed
// data_type of the node where the failure happened.
package fieldpath

import "strconv"

const Root = "$"

// Child appends a named child segment ("$.a.b").
func Child(path, name string) string { return path + "." + name }

// Element appends the list-element segment ("$.xs.element").
func Element(path string) string { return path + ".element" }

// Key appends the map-key segment ("$.m.key").
func Key(path string) string { return path + ".key" }

// Value appends the map-value segment ("$.m.value").
func Value(path string) string { return path + ".value" }

// Variant appends a union type-id segment ("$.u.0").
func Variant(path string, typeID int8) string {
	return path + "." + strconv.Itoa(int(typeID))
}
