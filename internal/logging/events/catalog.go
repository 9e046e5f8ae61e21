package events

import "github.com/atomicstack/marquee/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Open(path string) {
	logging.Trace("catalog.open", map[string]interface{}{"path": path})
}

func (CatalogTracer) Seeded(titles int) {
	logging.Trace("catalog.seeded", map[string]interface{}{"titles": titles})
}

func (CatalogTracer) Refresh(sections int) {
	logging.Trace("catalog.refresh", map[string]interface{}{"sections": sections})
}

func (CatalogTracer) Progress(titleID string, seconds int) {
	logging.Trace("catalog.progress", map[string]interface{}{"title": titleID, "seconds": seconds})
}

func (CatalogTracer) ListToggle(titleID string, added bool) {
	logging.Trace("catalog.list-toggle", map[string]interface{}{"title": titleID, "added": added})
}
