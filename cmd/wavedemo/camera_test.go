package main

import (
	"math"
	"testing"

	"wavegrid/internal/wave"
)

func TestProjectTargetAtCenter(t *testing.T) {
	cam := newCamera(10)
	vp := cam.viewProjection(2)
	sv := project(vp, wave.Vec3{}, 200, 100)
	if !sv.ok {
		t.Fatal("target not in front of the camera")
	}
	if math.Abs(float64(sv.x-100)) > 1e-3 || math.Abs(float64(sv.y-50)) > 1e-3 {
		t.Errorf("target projected to (%v, %v), want (100, 50)", sv.x, sv.y)
	}
	if math.Abs(float64(sv.depth-cam.distance)) > 1e-3 {
		t.Errorf("depth = %v, want %v", sv.depth, cam.distance)
	}
}

func TestProjectUpIsUp(t *testing.T) {
	cam := newCamera(10)
	vp := cam.viewProjection(1)
	base := project(vp, wave.Vec3{}, 100, 100)
	raised := project(vp, wave.Vec3{Y: 1}, 100, 100)
	if !raised.ok || raised.y >= base.y {
		t.Errorf("raised point y = %v, base y = %v; want raised above", raised.y, base.y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := newCamera(10)
	e := cam.eye()
	behind := wave.Vec3{X: 2 * e.X(), Y: 2 * e.Y(), Z: 2 * e.Z()}
	if sv := project(cam.viewProjection(1), behind, 100, 100); sv.ok {
		t.Errorf("point behind the camera projected to %+v", sv)
	}
}

func TestOrbitClamps(t *testing.T) {
	cam := newCamera(10)
	cam.orbit(0, 10, 0)
	if cam.pitch != maxPitch {
		t.Errorf("pitch = %v, want %v", cam.pitch, float32(maxPitch))
	}
	cam.orbit(0, -10, 0)
	if cam.pitch != minPitch {
		t.Errorf("pitch = %v, want %v", cam.pitch, float32(minPitch))
	}
	cam.orbit(0, 0, 100)
	if cam.distance != cam.minDist {
		t.Errorf("distance = %v, want %v", cam.distance, cam.minDist)
	}
	cam.orbit(0, 0, -100)
	if cam.distance != cam.maxDist {
		t.Errorf("distance = %v, want %v", cam.distance, cam.maxDist)
	}
}
