// Package recording captures the draws a clip-mask build issues against a
// gpu.Target as typed commands.
//
// A Recorder wraps a Target. Each call is stored as a command struct and
// then forwarded, so the wrapped device renders exactly as before. Draw
// states and paths are snapshotted into a ResourcePool and referenced by
// index, which keeps a Recording independent of later mutation by the
// caller.
//
// Commands are plain structs rather than an encoded byte stream, so tests
// and tools can inspect a trace directly:
//
//	rec := recording.NewRecorder(dev)
//	mgr := clipmask.New(rec, dev, dev.PathRenderers())
//	setup, err := mgr.SetupClipping(ds, cd, nil)
//	...
//	r := rec.Finish()
//	fmt.Println(r.Count(recording.CmdStencilPath))
//
// A Recording can be replayed onto another Target. Render targets seen
// while recording can be remapped with WithTargetMap so a trace captured on
// one device is reproduced on another.
package recording
