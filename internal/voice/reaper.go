package voice

import (
	"context"
	"log"
	"time"
)

// ReapInterval is how often idle sessions are swept. Fixed, not configurable.
const ReapInterval = 5 * time.Minute

// OccupancyFunc reports how many non-bot users currently sit in the channel.
// Implementations must treat an unknown guild or a deleted channel as empty.
type OccupancyFunc func(guildID, channelID string) int

// RunIdleReaper periodically force-disconnects sessions whose channel has no
// human occupants left. Runs until ctx is done. Errors are logged and
// swallowed; the sweep has no caller waiting on it.
func RunIdleReaper(ctx context.Context, registry *Registry, occupancy OccupancyFunc) {
	ticker := time.NewTicker(ReapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reapIdleSessions(registry, occupancy)
		}
	}
}

func reapIdleSessions(registry *Registry, occupancy OccupancyFunc) {
	for _, session := range registry.Sessions() {
		guildID := session.GuildID()
		if occupancy(guildID, session.ChannelID()) > 0 {
			continue
		}
		log.Printf("[INFO] Reaping idle voice session in guild %s", guildID)
		if err := registry.Disconnect(guildID, true); err != nil {
			log.Printf("[ERR] Failed to disconnect idle session in guild %s: %v", guildID, err)
		}
	}
}
