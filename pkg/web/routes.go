package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/store"
	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 10 * time.Second

// Bot is the part of the Discord client the API reports on
type Bot interface {
	IsReady() bool
	GuildCount() int
	Latency() time.Duration
	Self() *discordgo.User
}

// API holds what the route handlers read from
type API struct {
	Moderation *moderation.Service
	Store      store.Backend
	Bot        Bot
	Hub        *EventHub

	// Token guards the per-guild routes, sent as "Authorization: Bearer
	// <token>". The routes are not served when it is empty.
	Token string
}

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, api *API) {
	group := s.Group("/api")
	{
		group.GET("/status", api.statusHandler)
		group.GET("/health", api.healthHandler)
		group.GET("/bot", api.botInfoHandler)
		if api.Hub != nil {
			group.GET("/events", api.Hub.HandleEvents)
		}
	}

	if api.Token == "" {
		logger.Warn("apiToken no configurado, las rutas /api/guilds quedan deshabilitadas", "WebServer")
		return
	}

	guilds := group.Group("/guilds/:guild", requireToken(api.Token), requireSnowflake("guild"))
	{
		guilds.GET("/config", api.configHandler)
		guilds.GET("/mutes", api.mutesHandler)
		guilds.GET("/warnings/:member", requireSnowflake("member"), api.warningsHandler)
	}
}

func requireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Token de API inválido o ausente.",
			})
			return
		}
		c.Next()
	}
}

func validSnowflake(id string) bool {
	_, err := strconv.ParseUint(id, 10, 64)
	return err == nil
}

func requireSnowflake(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validSnowflake(c.Param(param)) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": param + " debe ser un ID válido.",
			})
			return
		}
		c.Next()
	}
}

func (a *API) context(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// storeError answers 503 for an unreachable store and 500 otherwise
func storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Store Unavailable",
			"message": "La base de datos no está disponible en este momento.",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": err.Error()})
}

func (a *API) storeStatus(ctx context.Context) gin.H {
	latency, err := a.Store.Ping(ctx)
	status := gin.H{
		"driver":   a.Store.Name(),
		"isOnline": err == nil,
	}
	if err == nil {
		status["latencyMs"] = latency.Milliseconds()
	} else {
		status["error"] = err.Error()
	}
	return status
}

// statusHandler returns the bot and store status
func (a *API) statusHandler(c *gin.Context) {
	ctx, cancel := a.context(c)
	defer cancel()

	bot := gin.H{"isOnline": false}
	if a.Bot != nil && a.Bot.IsReady() {
		bot = gin.H{
			"isOnline":  true,
			"guilds":    a.Bot.GuildCount(),
			"latencyMs": a.Bot.Latency().Milliseconds(),
		}
	}

	events := 0
	if a.Hub != nil {
		events = a.Hub.Count()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"store":          a.storeStatus(ctx),
		"bot":            bot,
		"eventConsumers": events,
	})
}

// healthHandler fails when the store cannot be reached
func (a *API) healthHandler(c *gin.Context) {
	ctx, cancel := a.context(c)
	defer cancel()

	if _, err := a.Store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

// botInfoHandler returns information about the bot
func (a *API) botInfoHandler(c *gin.Context) {
	if a.Bot == nil || !a.Bot.IsReady() || a.Bot.Self() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := a.Bot.Self()

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        a.Bot.GuildCount(),
		"isReady":       true,
	})
}

func (a *API) configHandler(c *gin.Context) {
	ctx, cancel := a.context(c)
	defer cancel()

	options, err := a.Moderation.Config.Get(ctx, c.Param("guild"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (a *API) mutesHandler(c *gin.Context) {
	ctx, cancel := a.context(c)
	defer cancel()

	guildID := c.Param("guild")
	snapshot, err := a.Moderation.Mutes.Snapshot(ctx, guildID)
	if err != nil {
		storeError(c, err)
		return
	}

	members := make([]string, 0, len(snapshot))
	for memberID := range snapshot {
		members = append(members, memberID)
	}
	sort.Strings(members)

	mutes := make([]gin.H, 0, len(members))
	for _, memberID := range members {
		mutes = append(mutes, gin.H{"memberId": memberID, "savedRoles": snapshot[memberID]})
	}

	c.JSON(http.StatusOK, gin.H{"guildId": guildID, "mutes": mutes})
}

func (a *API) warningsHandler(c *gin.Context) {
	ctx, cancel := a.context(c)
	defer cancel()

	guildID, memberID := c.Param("guild"), c.Param("member")
	warnings, err := a.Moderation.Ledger.ListWarnings(ctx, guildID, memberID)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId":  guildID,
		"memberId": memberID,
		"count":    len(warnings),
		"warnings": warnings,
	})
}
