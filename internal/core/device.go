package core

// DeviceClass buckets devices by viewport width and logical cores.
type DeviceClass int

const (
	DeviceLowEnd DeviceClass = iota
	DeviceMobile
	DeviceTablet
	DeviceDesktop
)

func (c DeviceClass) String() string {
	switch c {
	case DeviceLowEnd:
		return "low-end"
	case DeviceMobile:
		return "mobile"
	case DeviceTablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// Device is what the engine knows about the host when sizing the particle
// set.
type Device struct {
	Width int
	Cores int
}

const (
	mobileMaxWidth = 768
	tabletMaxWidth = 1024
	lowEndMaxCores = 4
)

// Class classifies the device. Unknown widths count as desktop.
func (d Device) Class() DeviceClass {
	if d.Width <= 0 {
		return DeviceDesktop
	}
	mobile := d.Width <= mobileMaxWidth
	switch {
	case mobile && d.Cores > 0 && d.Cores <= lowEndMaxCores:
		return DeviceLowEnd
	case mobile:
		return DeviceMobile
	case d.Width <= tabletMaxWidth:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

var (
	particleCounts = [...]int{DeviceLowEnd: 500, DeviceMobile: 800, DeviceTablet: 1200, DeviceDesktop: 2000}
	introCounts    = [...]int{DeviceLowEnd: 1500, DeviceMobile: 2500, DeviceTablet: 3500, DeviceDesktop: 5000}
)

// ParticleCount is the size of the scene particle set for the device.
func (d Device) ParticleCount() int { return particleCounts[d.Class()] }

// IntroCount is the size of the intro warp field for the device.
func (d Device) IntroCount() int { return introCounts[d.Class()] }

// PointSize returns the rendered particle size in pixels for a viewport
// width.
func PointSize(width int) float32 {
	switch {
	case width > 0 && width <= 480:
		return 2.5
	case width > 0 && width <= mobileMaxWidth:
		return 3
	default:
		return 3.5
	}
}
