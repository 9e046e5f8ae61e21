package events

import "github.com/atomicstack/marquee/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Enter(key string) {
	logging.Trace("nav.enter", map[string]interface{}{"key": key})
}

func (NavTracer) AutoFocus(handle int) {
	logging.Trace("nav.autofocus", map[string]interface{}{"handle": handle})
}

func (NavTracer) Move(direction string, from, to int) {
	logging.Trace("nav.move", map[string]interface{}{
		"direction": direction,
		"from":      from,
		"to":        to,
	})
}

func (NavTracer) Focus(handle int, group string) {
	logging.Trace("nav.focus", map[string]interface{}{"handle": handle, "group": group})
}

func (NavTracer) Activate(handle int) {
	logging.Trace("nav.activate", map[string]interface{}{"handle": handle})
}

func (NavTracer) Blocked(direction, reason string) {
	logging.Trace("nav.blocked", map[string]interface{}{"direction": direction, "reason": reason})
}

func (NavTracer) ZoneIgnored(direction, zone string) {
	logging.Trace("nav.zone-ignored", map[string]interface{}{"direction": direction, "zone": zone})
}

func (NavTracer) TextExit(direction string) {
	logging.Trace("nav.text-exit", map[string]interface{}{"direction": direction})
}

func (NavTracer) PointerIdle() {
	logging.Trace("nav.pointer-idle", nil)
}
