package recording

import (
	"fmt"

	"github.com/gogpu/gr"
	"github.com/gogpu/gr/gpu"
)

// Recorder is a gpu.Target that records every call before forwarding it
// to the wrapped target. With a nil target calls are only recorded.
type Recorder struct {
	target    gpu.Target
	commands  []Command
	resources *ResourcePool
}

// NewRecorder returns a recorder forwarding to target.
func NewRecorder(target gpu.Target) *Recorder {
	return &Recorder{
		target:    target,
		commands:  make([]Command, 0, 64),
		resources: NewResourcePool(),
	}
}

// Finish returns the recording and starts a new one.
func (r *Recorder) Finish() *Recording {
	rec := &Recording{commands: r.commands, resources: r.resources}
	r.commands = make([]Command, 0, 64)
	r.resources = NewResourcePool()
	return rec
}

// Len returns the number of commands recorded since the last Finish.
func (r *Recorder) Len() int { return len(r.commands) }

func (r *Recorder) record(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// Caps implements gpu.Target.
func (r *Recorder) Caps() gpu.Caps {
	if r.target == nil {
		return gpu.Caps{}
	}
	return r.target.Caps()
}

// Clear implements gpu.Target.
func (r *Recorder) Clear(rt gpu.RenderTarget, rect gr.IRect, color uint32) error {
	r.record(ClearCommand{Target: r.resources.AddTarget(rt), Rect: rect, Color: color})
	if r.target == nil {
		return nil
	}
	return r.target.Clear(rt, rect, color)
}

// ClearStencilClip implements gpu.Target.
func (r *Recorder) ClearStencilClip(rt gpu.RenderTarget, rect gr.IRect, insideClip bool) error {
	r.record(ClearStencilClipCommand{Target: r.resources.AddTarget(rt), Rect: rect, Inside: insideClip})
	if r.target == nil {
		return nil
	}
	return r.target.ClearStencilClip(rt, rect, insideClip)
}

// DrawRect implements gpu.Target.
func (r *Recorder) DrawRect(ds *gpu.DrawState, rect gr.Rect, aa bool) error {
	r.record(DrawRectCommand{State: r.resources.AddState(ds), Rect: rect, AA: aa})
	if r.target == nil {
		return nil
	}
	return r.target.DrawRect(ds, rect, aa)
}

// DrawPath implements gpu.Target.
func (r *Recorder) DrawPath(ds *gpu.DrawState, p *gr.Path, aa bool) error {
	r.record(DrawPathCommand{State: r.resources.AddState(ds), Path: r.resources.AddPath(p), AA: aa})
	if r.target == nil {
		return nil
	}
	return r.target.DrawPath(ds, p, aa)
}

// StencilPath implements gpu.Target.
func (r *Recorder) StencilPath(ds *gpu.DrawState, p *gr.Path) error {
	r.record(StencilPathCommand{State: r.resources.AddState(ds), Path: r.resources.AddPath(p)})
	if r.target == nil {
		return nil
	}
	return r.target.StencilPath(ds, p)
}

// Recording is an immutable command trace.
type Recording struct {
	commands  []Command
	resources *ResourcePool
}

// Commands returns the recorded commands in order.
func (r *Recording) Commands() []Command { return r.commands }

// Resources returns the pool referenced by the commands.
func (r *Recording) Resources() *ResourcePool { return r.resources }

// Len returns the number of commands.
func (r *Recording) Len() int { return len(r.commands) }

// Count returns the number of commands of type t.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Types returns the command types in order.
func (r *Recording) Types() []CommandType {
	types := make([]CommandType, len(r.commands))
	for i, c := range r.commands {
		types[i] = c.Type()
	}
	return types
}

// PlaybackOption configures Playback.
type PlaybackOption func(*playback)

type playback struct {
	mapTarget func(gpu.RenderTarget) gpu.RenderTarget
}

// WithTargetMap replaces every recorded render target with f(rt).
func WithTargetMap(f func(gpu.RenderTarget) gpu.RenderTarget) PlaybackOption {
	return func(p *playback) { p.mapTarget = f }
}

// Playback replays the recording onto target, stopping at the first error.
func (r *Recording) Playback(target gpu.Target, opts ...PlaybackOption) error {
	pb := playback{mapTarget: func(rt gpu.RenderTarget) gpu.RenderTarget { return rt }}
	for _, opt := range opts {
		opt(&pb)
	}
	res := r.resources

	state := func(ref StateRef) (*gpu.DrawState, error) {
		s := res.State(ref)
		if s == nil {
			return nil, fmt.Errorf("recording: invalid state reference %d", ref)
		}
		ds := s.Clone()
		ds.RenderTarget = pb.mapTarget(ds.RenderTarget)
		return ds, nil
	}

	for i, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case ClearCommand:
			err = target.Clear(pb.mapTarget(res.Target(c.Target)), c.Rect, c.Color)
		case ClearStencilClipCommand:
			err = target.ClearStencilClip(pb.mapTarget(res.Target(c.Target)), c.Rect, c.Inside)
		case DrawRectCommand:
			var ds *gpu.DrawState
			if ds, err = state(c.State); err == nil {
				err = target.DrawRect(ds, c.Rect, c.AA)
			}
		case DrawPathCommand:
			var ds *gpu.DrawState
			if ds, err = state(c.State); err == nil {
				err = target.DrawPath(ds, res.Path(c.Path), c.AA)
			}
		case StencilPathCommand:
			var ds *gpu.DrawState
			if ds, err = state(c.State); err == nil {
				err = target.StencilPath(ds, res.Path(c.Path))
			}
		default:
			err = fmt.Errorf("recording: unknown command %T", cmd)
		}
		if err != nil {
			return fmt.Errorf("recording: command %d (%v): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

var _ gpu.Target = (*Recorder)(nil)
