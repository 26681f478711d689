// Package wave implements a grid-based height-field wave simulator.
//
// A Simulator evolves a rows x cols lattice of surface heights under the
// damped 2D wave equation with an explicit finite-difference scheme. Real
// frame time is consumed in fixed simulation steps so the dynamics do not
// depend on frame rate. After each Update the per-vertex normals and
// x-tangents are rebuilt from central differences for lighting.
//
// The simulator is not safe for concurrent use. Callers confine all access
// to the frame-update goroutine.
package wave
