package models

import "github.com/goccy/go-json"

// MutesBlob is one guild's slice of the mutes document: member id -> the role
// ids the member had when muted. A key is present iff the member is muted.
type MutesBlob map[string][]string

// UnmarshalJSON accepts role ids stored as strings or numbers.
func (b *MutesBlob) UnmarshalJSON(data []byte) error {
	var raw map[string][]Snowflake
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(MutesBlob, len(raw))
	for member, roles := range raw {
		ids := make([]string, 0, len(roles))
		for _, role := range roles {
			if role != "" {
				ids = append(ids, role.String())
			}
		}
		out[member] = ids
	}
	*b = out
	return nil
}
