package discord

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// cooldowns limits how often one user may run one command
type cooldowns struct {
	mu       sync.Mutex
	limiters map[string]*cooldownEntry
	now      func() time.Time
}

type cooldownEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newCooldowns() *cooldowns {
	return &cooldowns{
		limiters: make(map[string]*cooldownEntry),
		now:      time.Now,
	}
}

// take consumes the user's slot for the command. It returns how long the user
// must still wait, or zero when the command may run.
func (c *cooldowns) take(command, userID string, every time.Duration) time.Duration {
	if every <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	key := command + ":" + userID

	entry, ok := c.limiters[key]
	if !ok {
		entry = &cooldownEntry{limiter: rate.NewLimiter(rate.Every(every), 1)}
		c.limiters[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return delay
	}
	return 0
}

// sweep drops entries idle for longer than maxIdle
func (c *cooldowns) sweep(maxIdle time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.limiters {
		if now.Sub(entry.lastSeen) > maxIdle {
			delete(c.limiters, key)
		}
	}
}

// CooldownMiddleware rejects a command run before the user's cooldown expired
func (c *ExtendedClient) CooldownMiddleware(ctx *CommandContext, cmd *Command, name string) error {
	user := ctx.User()
	if cmd.Cooldown <= 0 || user == nil {
		return nil
	}

	wait := c.cooldowns.take(name, user.ID, cmd.Cooldown)
	if wait == 0 {
		return nil
	}

	ctx.ReplyEphemeral(fmt.Sprintf("⏳ ¡Más despacio! Espera `%.1f` segundos.", wait.Seconds()))
	return errCooldown
}
