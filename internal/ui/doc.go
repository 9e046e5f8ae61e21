// Package ui contains the Bubble Tea program that powers the catalog
// browser. The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own layout, registration,
// searching, playback, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - The navigation engine sees every message first so its internal
//     timers keep working, and every key press is offered to it before the
//     host: the engine decides whether an arrow moves focus or stays with
//     the widget that holds it.
//   - Whatever the engine declines is routed through a typed handler
//     registry so each tea.Msg is handled by a focused function (key
//     chords, mouse wheel, catalog events, playback ticks).
//
// State ownership:
//   - Shelf and hero data live in internal/state stores, kept in sync by
//     the dispatcher so rebuilds only happen when a catalog poll actually
//     changed something.
//   - Element geometry is owned by layout.go. Registration closures read
//     the live row records, so scrolling a shelf moves every registered
//     card without re-registering anything.
//   - Writes to the catalog run through the internal/ui/command package,
//     letting actions execute asynchronously via the central command bus.
//
// Catalog interactions:
//   - A catalog.Watcher polls the store; Update waits for its events and
//     hands them to applyCatalogEvent, which refreshes the stores and
//     rebuilds the browse registrations when shelves or the hero changed.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (navigation, search, playback, catalog sync)
// without needing to reason about the entire TUI at once.
package ui
