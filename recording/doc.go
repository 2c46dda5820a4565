// Package recording captures renderer calls as typed commands.
//
// A Recorder implements backend.Renderer and backend.MarkerRenderer.
// Instead of drawing it appends one command per call, with coordinates
// already mapped into display space and graphics contexts copied, so a
// finished Recording is independent of the artists that produced it.
//
// A Recording can be inspected (tests assert on the commands artists emit)
// or replayed into any other renderer:
//
//	rec := recording.NewRecorder(640, 480, 100)
//	if err := fig.Draw(rec); err != nil {
//	    return err
//	}
//	out, _ := backend.New("svg", 6.4, 4.8, backend.Options{DPI: 100})
//	rec.Finish().Playback(out)
//
// Design follows Cairo's approach of typed command structs for
// inspectability rather than a serialized byte stream.
package recording
