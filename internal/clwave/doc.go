// Package clwave runs the wave stencil on an OpenCL device. It implements
// wave.Stepper and is only functional in builds tagged "opencl"; other
// builds get a stub whose New always fails.
package clwave
