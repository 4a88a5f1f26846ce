// Package clef parses Compact Log Event Format (CLEF) files.
//
// A CLEF file holds one JSON object per line. The reserved keys @t, @m, @mt,
// @l, @x and @i carry the timestamp, rendered message, message template,
// level, exception and event id; every other key is a property (a
// Rendering) whose value can be substituted into the template.
//
// Typical use:
//
//	log, err := clef.Load("app.clef")
//	if err != nil {
//		return err
//	}
//	for _, e := range log.Events() {
//		fmt.Println(clef.DisplayLine(e))
//	}
package clef
