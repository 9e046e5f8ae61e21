package events

import "github.com/atomicstack/marquee/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Info(text string) {
	logging.Trace("ui.info", map[string]interface{}{"text": text})
}

func (UITracer) Search(query string, results int) {
	logging.Trace("ui.search", map[string]interface{}{"query": query, "results": results})
}

func (UITracer) PageScroll(offset int) {
	logging.Trace("ui.page-scroll", map[string]interface{}{"offset": offset})
}

func (UITracer) RowScroll(row string, offset int) {
	logging.Trace("ui.row-scroll", map[string]interface{}{"row": row, "offset": offset})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
