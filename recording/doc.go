// Package recording provides a Canvas that records drawing operations as
// typed command structures instead of rasterizing them.
//
// Commands are stored in order and can be inspected by tests or replayed to
// another Canvas. Typed command structs are used rather than a binary format
// so recordings stay inspectable and debuggable.
//
//	rec := recording.New()
//	backend, _ := ggrender.New(rec, surface)
//	// ... render a frame ...
//	for _, cmd := range rec.Commands() {
//		fmt.Println(cmd.Type())
//	}
package recording
