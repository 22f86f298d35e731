// Package layout turns one week of expenses into a positioned node-link
// diagram.
//
// # Overview
//
// Categories and expenses become view nodes. Expenses are pinned into seven
// weekday lanes across the top of the canvas; categories float in a band
// along the bottom, pushed apart by charge repulsion and pulled toward their
// expenses by link springs. The simulation is a velocity-Verlet integrator
// with an exponential cooling schedule (alpha starts at 0.1, decays by 0.99
// per tick and freezes below 0.005).
//
// # Pipeline
//
// [Build] runs the full pass:
//
//  1. [CalculateCategories]: totals per category, sorted by total descending
//  2. [CalculateExpenses]: constant-radius expense nodes
//  3. [CalculateLinks]: one link per (category, expense) membership
//  4. [CalculateSizes]: category radius from total
//  5. [HighlightSelections]: selection flags
//  6. [DatesForWeek]: seven weekday lanes
//  7. [PositionExpenses]: pin expenses into their lanes
//  8. [PositionGraph]: run the force simulation over categories
//
// Every calculation that needs canvas geometry takes an explicit [Context]
// built by [NewContext], so independent passes can run concurrently.
//
// # Links
//
// A [Link] holds indices into the Categories and Expenses slices of the
// [State] it belongs to. Moving a node therefore moves both ends of every
// link that references it without any aliasing between records.
//
// # Dragging
//
// [BeginDrag] starts a [DragSession]: categories shrink to drop targets and
// are drawn toward the dragged expense. [DragSession.Move] returns a new
// snapshot for every pointer position and [DragSession.Drop] reports the
// category under the pointer, if any, as a [Reclassification].
//
// # Diffing
//
// [CalculateUpdate] compares two snapshots by id and sets the Update flag on
// nodes and lanes whose observable fields changed, so a renderer can animate
// only what moved.
package layout
