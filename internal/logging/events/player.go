package events

import "github.com/atomicstack/marquee/internal/logging"

type PlayerTracer struct{}

var Player = PlayerTracer{}

func (PlayerTracer) Open(titleID string, resume int) {
	logging.Trace("player.open", map[string]interface{}{"title": titleID, "resume": resume})
}

func (PlayerTracer) Close(titleID string, seconds int) {
	logging.Trace("player.close", map[string]interface{}{"title": titleID, "seconds": seconds})
}

func (PlayerTracer) Seek(titleID string, seconds int) {
	logging.Trace("player.seek", map[string]interface{}{"title": titleID, "seconds": seconds})
}

func (PlayerTracer) Pause(titleID string, paused bool) {
	logging.Trace("player.pause", map[string]interface{}{"title": titleID, "paused": paused})
}
