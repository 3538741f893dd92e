package aamva

import "strings"

// ELEMENT_ID_LENGTH is the width of every AAMVA data element identifier
const ELEMENT_ID_LENGTH = 3

// ElementMap holds the raw value of every element line in a payload, keyed
// by its three character identifier.
type ElementMap map[string]string

func (m ElementMap) Lookup(id string) (string, bool) {
	value, ok := m[id]
	return value, ok
}

// Tokenize splits a newline separated payload into elements. Lines shorter
// than an identifier are dropped, values are trimmed and a repeated
// identifier keeps its last value. Identifiers are not checked against the
// AAMVA vocabulary.
func Tokenize(raw string) ElementMap {
	elements := ElementMap{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if len(line) < ELEMENT_ID_LENGTH {
			continue
		}
		elements[line[:ELEMENT_ID_LENGTH]] = strings.TrimSpace(line[ELEMENT_ID_LENGTH:])
	}
	return elements
}
