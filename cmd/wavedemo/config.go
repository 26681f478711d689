package main

import "time"

// Default grid, physics, presentation and audio settings for the demo.
// Grid and physics defaults can be overridden on the command line.
const (
	defaultRows        = 96
	defaultCols        = 96
	defaultSpatialStep = 0.25
	defaultTimeStep    = 1.0 / 120
	defaultWaveSpeed   = 3.0
	defaultDamping     = 0.35

	screenWidth, screenHeight = 1024, 640
	defaultTPS                = 60

	defaultRainInterval = 0.4
	rainMinMagnitude    = 0.35
	rainMaxMagnitude    = 1.1
	rainMargin          = 3
	splashMagnitude     = 1.6
	pickRadiusPixels    = 24

	paletteRange = 0.5
	lightX       = -0.4
	lightY       = 1.0
	lightZ       = 0.3

	fovDegrees   = 50
	nearPlane    = 0.05
	farPlane     = 500
	orbitSpeed   = 1.4 // radians per second
	zoomSpeed    = 1.5 // distance factor per second
	minPitch     = 0.1
	maxPitch     = 1.45
	minDistScale = 0.4
	maxDistScale = 4

	streamEveryTicks = 2
	shutdownTimeout  = 3 * time.Second

	audioSampleRate          = 48000
	audioPlayerBufferLatency = 60 * time.Millisecond
	audioGain                = 1.5
)
