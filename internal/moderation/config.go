package moderation

import (
	"context"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
)

// ConfigResolver reads and patches per-guild options.
type ConfigResolver struct {
	options *store.Document[models.GuildOptions]
	locks   *Locks
}

// NewConfigResolver creates a ConfigResolver. Guilds without stored options
// resolve to the given default prefix with every other field unset.
func NewConfigResolver(backend store.Backend, locks *Locks, defaultPrefix string) *ConfigResolver {
	return &ConfigResolver{
		options: store.NewDocument(backend, store.KindOptions, func() models.GuildOptions {
			return models.DefaultOptions(defaultPrefix)
		}),
		locks: locks,
	}
}

// Get returns the guild options, default-filled when absent
func (c *ConfigResolver) Get(ctx context.Context, guildID string) (models.GuildOptions, error) {
	return c.options.Get(ctx, guildID)
}

// Set merges patch into the stored options and returns the result.
func (c *ConfigResolver) Set(ctx context.Context, guildID string, patch models.OptionsPatch) (models.GuildOptions, error) {
	opts, _, err := c.modify(ctx, guildID, func(opts *models.GuildOptions) bool {
		if patch.IsEmpty() {
			return false
		}
		patch.Apply(opts)
		return true
	})
	return opts, err
}

// ForgetRole clears mod_role and muted_role when they point at a deleted
// role. It reports whether anything changed.
func (c *ConfigResolver) ForgetRole(ctx context.Context, guildID, roleID string) (models.GuildOptions, bool, error) {
	return c.modify(ctx, guildID, func(opts *models.GuildOptions) bool {
		changed := false
		if roleID != "" && opts.ModRole.String() == roleID {
			opts.ModRole = ""
			changed = true
		}
		if roleID != "" && opts.MutedRole.String() == roleID {
			opts.MutedRole = ""
			changed = true
		}
		return changed
	})
}

// modify re-reads the options under the guild lock and saves them only when
// fn reports a change.
func (c *ConfigResolver) modify(ctx context.Context, guildID string, fn func(*models.GuildOptions) bool) (models.GuildOptions, bool, error) {
	defer c.locks.Guild(guildID)()
	defer c.locks.Document(store.KindOptions, guildID)()

	opts, err := c.options.Get(ctx, guildID)
	if err != nil {
		return opts, false, err
	}
	if !fn(&opts) {
		return opts, false, nil
	}
	if err := c.options.Put(ctx, guildID, opts); err != nil {
		return opts, false, err
	}
	return opts, true, nil
}
