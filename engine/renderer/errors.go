package renderer

import "errors"

var (
	// ErrNoAdapter is returned when no compatible GPU adapter is available.
	ErrNoAdapter = errors.New("renderer: no compatible GPU adapter")

	// ErrDeviceCreation is returned when the logical device could not be opened.
	ErrDeviceCreation = errors.New("renderer: device creation failed")

	// ErrSurfaceCreation is returned when the platform rejects the surface for a window.
	ErrSurfaceCreation = errors.New("renderer: surface creation failed")

	// ErrNoSurfaceConfig is returned when the adapter reports no usable surface format.
	ErrNoSurfaceConfig = errors.New("renderer: no valid surface configuration")

	// ErrSurfaceOutdated is returned by a backend when the next image could not be acquired
	// because the surface no longer matches the window. It is recoverable by reconfiguring.
	ErrSurfaceOutdated = errors.New("renderer: surface outdated")

	// ErrDeviceLost is returned when a frame cannot be produced even after reconfiguring the surface.
	// It is not recoverable.
	ErrDeviceLost = errors.New("renderer: device lost")

	// ErrFrameInProgress is returned when a frame is begun before the previous one was presented.
	ErrFrameInProgress = errors.New("renderer: previous frame not yet presented")
)
