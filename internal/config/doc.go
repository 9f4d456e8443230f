// Package config builds the engraving style from a stack of style sheets
// and keeps it current while the sheets change.
//
// From lowest to highest rank the stack holds the built-in defaults, the
// sheet files in the order given, ENGRAVE_STYLE_* environment variables
// and single overrides made with Set. The highest sheet defining a key
// wins. Sheets may @include others.
//
// A sheet names styles flat or grouped by prefix; these are the same:
//
//	fretStringSpacing = 0.7
//
//	[fret]
//	stringSpacing = 0.7
//
// YAML works the same way. Lengths are in staff spaces except spatium,
// which is in millimetres. Enumerated styles take vertical or horizontal,
// above or below, and left or right. Unknown keys are logged and ignored;
// a value that does not fit its style fails the load.
//
// With the watcher on, a changed sheet is reread and observers are told
// which keys moved. A sheet that no longer parses leaves the last good
// style in place.
//
//	cfg := config.New(config.WithFiles("fret.toml"), config.WithWatcher(true))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	defer cfg.Close()
//	cfg.SubscribeKey("fret", func(notify.Change) { redraw(cfg.Style()) })
package config
