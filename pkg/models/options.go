package models

// GuildOptions is the per-guild configuration. Empty ids mean "unset".
type GuildOptions struct {
	Prefix     string    `json:"prefix"`
	PublicLog  Snowflake `json:"public_log"`
	PrivateLog Snowflake `json:"private_log"`
	ModRole    Snowflake `json:"mod_role"`
	MutedRole  Snowflake `json:"muted_role"`
}

// DefaultOptions returns the configuration of a guild that never changed any setting.
func DefaultOptions(prefix string) GuildOptions {
	return GuildOptions{Prefix: prefix}
}

// OptionsPatch carries a partial update. Nil fields are left untouched, an
// empty string clears the field.
type OptionsPatch struct {
	Prefix     *string `json:"prefix,omitempty"`
	PublicLog  *string `json:"public_log,omitempty"`
	PrivateLog *string `json:"private_log,omitempty"`
	ModRole    *string `json:"mod_role,omitempty"`
	MutedRole  *string `json:"muted_role,omitempty"`
}

// Apply merges the patch into o.
func (p OptionsPatch) Apply(o *GuildOptions) {
	if p.Prefix != nil {
		o.Prefix = *p.Prefix
	}
	if p.PublicLog != nil {
		o.PublicLog = Snowflake(*p.PublicLog)
	}
	if p.PrivateLog != nil {
		o.PrivateLog = Snowflake(*p.PrivateLog)
	}
	if p.ModRole != nil {
		o.ModRole = Snowflake(*p.ModRole)
	}
	if p.MutedRole != nil {
		o.MutedRole = Snowflake(*p.MutedRole)
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p OptionsPatch) IsEmpty() bool {
	return p.Prefix == nil && p.PublicLog == nil && p.PrivateLog == nil && p.ModRole == nil && p.MutedRole == nil
}
