// Package fields maps raw field names onto the keypath and scope
// addressing used by Coralogix observation fields. The lookup tables are
// immutable after package init and safe for concurrent reads.
package fields

import (
	"strings"

	"github.com/dashmorph/dashmorph/internal/coralogix"
)

// Indexing suffixes the source platform appends for exact-match and
// numeric indexing. They never appear in a resolved descriptor.
var indexSuffixes = []string{".keyword", ".numeric"}

// Prefixes marking a field as addressed through the metadata namespace.
// The longer prefix must be tried first.
var metadataPrefixes = []string{"coralogix.metadata.", "coralogix."}

var metadataFields = map[string]bool{
	"applicationname": true,
	"subsystemname":   true,
	"severity":        true,
	"logid":           true,
	"timestamp":       true,
	"priorityclass":   true,
}

var labelFields = map[string]bool{
	"category":     true,
	"classname":    true,
	"computername": true,
	"methodname":   true,
	"threadid":     true,
	"ipaddress":    true,
}

// StripIndexSuffix removes a trailing indexing suffix, matched case
// insensitively. Names without one pass through unchanged.
func StripIndexSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, suffix := range indexSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// Resolve maps a raw field name to its observation field descriptor.
// Resolution is pure: indexing suffixes are stripped first, metadata
// prefixes next, then the remainder is matched against the fixed metadata
// and label sets before defaulting to a user-data keypath split on dots.
// A given name always yields the same descriptor.
func Resolve(name string) coralogix.ObservationField {
	n := StripIndexSuffix(name)
	if rest, ok := stripMetadataPrefix(n); ok {
		n = strings.ToLower(rest)
	}
	lower := strings.ToLower(n)
	if metadataFields[lower] {
		return coralogix.ObservationField{Keypath: []string{lower}, Scope: coralogix.ScopeMetadata}
	}
	if labelFields[lower] {
		return coralogix.ObservationField{Keypath: []string{lower}, Scope: coralogix.ScopeLabel}
	}
	return coralogix.ObservationField{Keypath: strings.Split(n, "."), Scope: coralogix.ScopeUserData}
}

func stripMetadataPrefix(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, prefix := range metadataPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return name[len(prefix):], true
		}
	}
	return name, false
}

// LuceneField returns the flat name used for a field inside Lucene
// clauses.
func LuceneField(name string) string {
	return Resolve(name).FlatName()
}
