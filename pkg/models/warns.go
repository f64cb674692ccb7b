// Package models holds the documents persisted by the record store.
package models

// WarnsBlob is one guild's slice of the warns document: member id -> reasons in
// the order they were issued.
type WarnsBlob map[string][]string

// Warning is one ledger entry as shown to moderators. Index is 1-based and is
// derived from the entry position, never stored.
type Warning struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// WarningsOf returns the numbered warnings of a member.
func (b WarnsBlob) WarningsOf(memberID string) []Warning {
	reasons := b[memberID]
	out := make([]Warning, 0, len(reasons))
	for i, reason := range reasons {
		out = append(out, Warning{Index: i + 1, Reason: reason})
	}
	return out
}
