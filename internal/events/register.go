// Package events wires the gateway events the bot reacts to.
// Events are grouped by category (ready, guild, member, role, shard).
package events

import (
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// eventTimeout bounds the store and platform work done inside a handler
const eventTimeout = 10 * time.Second

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)
	RegisterMemberEvents(client)
	RegisterRoleEvents(client)
	RegisterShardEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
