// Package analyzer classifies how m68k subroutines use registers with respect to
// the calling convention.
//
// Analysis is a single pass over source lines and runs in five steps:
//
//   - LocateSubroutines finds labels followed by a reachable rts/rte and returns
//     one Span per subroutine.
//   - Classify decides, for one line, whether it is a movem save to the stack,
//     a movem restore from the stack, or a generic instruction, and which registers
//     it writes.
//   - Tracker walks the lines of a span accumulating the touched, modified and saved
//     register sets.
//   - Resolve turns those sets into one Status per register.
//   - LocateUnsafeSites finds the lines where preserved registers are modified
//     without being saved.
//
// Everything here is a pure function of its input lines. Malformed input is never an
// error: unrecognized lines simply have no effect.
package analyzer
