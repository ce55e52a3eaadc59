/*
Package geometry computes step bounding boxes, resolves the anchor pair between two steps
and emits the cubic Bézier control points used to draw funnel connections.

Everything here is a pure function of the steps passed in. Paths are recomputed for the
whole graph on every call; funnels are human-sized (tens of steps), so there is no
incremental bookkeeping to keep in sync.
*/
package geometry
