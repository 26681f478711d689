package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"wavegrid/internal/wave"
)

// camera orbits a target point at a fixed distance.
type camera struct {
	yaw, pitch float32
	distance   float32
	minDist    float32
	maxDist    float32
	target     mgl32.Vec3
}

// newCamera frames a surface of the given horizontal extent.
func newCamera(extent float32) camera {
	d := extent * 1.3
	return camera{
		yaw:      0.7,
		pitch:    0.6,
		distance: d,
		minDist:  d * minDistScale,
		maxDist:  d * maxDistScale,
	}
}

func (c *camera) eye() mgl32.Vec3 {
	sy, cy := math.Sincos(float64(c.yaw))
	sp, cp := math.Sincos(float64(c.pitch))
	offset := mgl32.Vec3{
		c.distance * float32(cp*sy),
		c.distance * float32(sp),
		c.distance * float32(cp*cy),
	}
	return c.target.Add(offset)
}

func (c *camera) viewProjection(aspect float32) mgl32.Mat4 {
	view := mgl32.LookAtV(c.eye(), c.target, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, nearPlane, farPlane)
	return proj.Mul4(view)
}

// orbit applies yaw, pitch and zoom deltas. zoom is a multiplicative
// exponent: positive values move the camera closer.
func (c *camera) orbit(dYaw, dPitch, zoom float32) {
	c.yaw = float32(math.Mod(float64(c.yaw+dYaw), 2*math.Pi))
	c.pitch = clampFloat(c.pitch+dPitch, minPitch, maxPitch)
	c.distance = clampFloat(c.distance*float32(math.Exp(-float64(zoom))), c.minDist, c.maxDist)
}

// handleInput moves the camera from arrow keys, WASD and the mouse wheel.
func (c *camera) handleInput(dt float32) {
	var dYaw, dPitch, zoom float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dYaw -= orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dYaw += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dPitch += orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dPitch -= orbitSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		zoom += zoomSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		zoom -= zoomSpeed * dt
	}
	_, wheel := ebiten.Wheel()
	zoom += float32(wheel) * 0.1
	if dYaw != 0 || dPitch != 0 || zoom != 0 {
		c.orbit(dYaw, dPitch, zoom)
	}
}

// screenVertex is a vertex after projection. ok is false for points on or
// behind the near plane.
type screenVertex struct {
	x, y, depth float32
	ok          bool
}

// project maps a world point to pixel coordinates in a width x height view.
func project(vp mgl32.Mat4, p wave.Vec3, width, height float32) screenVertex {
	clip := vp.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	w := clip.W()
	if w <= nearPlane {
		return screenVertex{}
	}
	nx, ny := clip.X()/w, clip.Y()/w
	return screenVertex{
		x:     (nx + 1) * 0.5 * width,
		y:     (1 - ny) * 0.5 * height,
		depth: w,
		ok:    true,
	}
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
