package recording

import (
	"github.com/gogpu/gr"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdClear            CommandType = iota // Clear colour in a rectangle
	CmdClearStencilClip                    // Reset the stencil clip bit
	CmdDrawRect                            // Draw a rectangle
	CmdDrawPath                            // Draw a path
	CmdStencilPath                         // Write path winding to stencil
)

var commandTypeNames = [...]string{
	CmdClear:            "Clear",
	CmdClearStencilClip: "ClearStencilClip",
	CmdDrawRect:         "DrawRect",
	CmdDrawPath:         "DrawPath",
	CmdStencilPath:      "StencilPath",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// TargetRef is a reference to a render target in the resource pool.
type TargetRef uint32

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// StateRef is a reference to a draw state snapshot in the resource pool.
type StateRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r TargetRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r PathRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r StateRef) IsValid() bool { return uint32(r) != InvalidRef }

// ClearCommand writes a colour to a rectangle, ignoring draw state.
type ClearCommand struct {
	Target TargetRef
	Rect   gr.IRect
	// Color is 0xAARRGGBB.
	Color uint32
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// ClearStencilClipCommand sets the stencil clip bit in a rectangle.
type ClearStencilClipCommand struct {
	Target TargetRef
	Rect   gr.IRect
	Inside bool
}

// Type implements Command.
func (ClearStencilClipCommand) Type() CommandType { return CmdClearStencilClip }

// DrawRectCommand draws a rectangle with a recorded state.
type DrawRectCommand struct {
	State StateRef
	Rect  gr.Rect
	AA    bool
}

// Type implements Command.
func (DrawRectCommand) Type() CommandType { return CmdDrawRect }

// DrawPathCommand draws a path with a recorded state.
type DrawPathCommand struct {
	State StateRef
	Path  PathRef
	AA    bool
}

// Type implements Command.
func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

// StencilPathCommand writes a path's winding into the user stencil bits.
type StencilPathCommand struct {
	State StateRef
	Path  PathRef
}

// Type implements Command.
func (StencilPathCommand) Type() CommandType { return CmdStencilPath }
