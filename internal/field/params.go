package field

import (
	"strconv"

	"starfield/internal/core"
)

// Params holds the tunables of the particle engine. Rates are per 60 Hz
// frame and are rescaled by the frame delta.
type Params struct {
	Seed    int64
	Count   int
	Lensing bool

	Lerp               float64
	Tolerance          float64
	MaxTransitionSteps int

	OrbitLerpXY float64
	OrbitLerpZ  float64
	ColorLerp   float64

	PointerGain float64
	PointerCap  float64

	DisturbanceStrength float64
	DisturbanceDuration float64
	DisturbanceSoft     float64

	LensingDeflection float64
	PhotonAmplitude   float64
	PhotonFrequency   float64
}

// DefaultParams returns the standard engine tuning.
func DefaultParams() Params {
	return Params{
		Seed:               1337,
		Lerp:               0.05,
		Tolerance:          5,
		MaxTransitionSteps: 900,

		OrbitLerpXY: 0.04,
		OrbitLerpZ:  0.015,
		ColorLerp:   0.05,

		PointerGain: 600,
		PointerCap:  6,

		DisturbanceStrength: 1200,
		DisturbanceDuration: 3,
		DisturbanceSoft:     40,

		LensingDeflection: 0.35,
		PhotonAmplitude:   6,
		PhotonFrequency:   2,
	}
}

// FromMap populates the params from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Params {
	p := DefaultParams()
	if cfg == nil {
		return p
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.Seed = parsed
		}
	}
	if v, ok := cfg["count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.Count = parsed
		}
	}
	if v, ok := cfg["lensing"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			p.Lensing = parsed
		}
	}
	if v, ok := cfg["max_transition_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			p.MaxTransitionSteps = parsed
		}
	}
	for _, c := range floatControls {
		if v, ok := cfg[c.Key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*p.floatField(c.Key) = c.Clamp(parsed)
			}
		}
	}
	return p
}

var floatControls = []core.ParameterControl{
	{Key: "lerp", Label: "Transition lerp", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.001, Max: 1, HasMin: true, HasMax: true},
	{Key: "tolerance", Label: "Settle tolerance", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.01, HasMin: true},
	{Key: "orbit_lerp_xy", Label: "Orbit smoothing xy", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "orbit_lerp_z", Label: "Orbit smoothing z", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "color_lerp", Label: "Color smoothing", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "pointer_gain", Label: "Pointer gain", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true},
	{Key: "pointer_cap", Label: "Pointer cap", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
	{Key: "disturbance_strength", Label: "Disturbance strength", Type: core.ParamTypeFloat, Step: 100, Min: 0, HasMin: true},
	{Key: "disturbance_duration", Label: "Disturbance duration", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.1, HasMin: true},
	{Key: "disturbance_soft", Label: "Disturbance softening", Type: core.ParamTypeFloat, Step: 5, Min: 1, HasMin: true},
	{Key: "lensing_deflection", Label: "Lensing deflection", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 3.14, HasMin: true, HasMax: true},
	{Key: "photon_amplitude", Label: "Photon ring amplitude", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true},
	{Key: "photon_frequency", Label: "Photon ring frequency", Type: core.ParamTypeFloat, Step: 0.25, Min: 0, HasMin: true},
}

func (p *Params) floatField(key string) *float64 {
	switch key {
	case "lerp":
		return &p.Lerp
	case "tolerance":
		return &p.Tolerance
	case "orbit_lerp_xy":
		return &p.OrbitLerpXY
	case "orbit_lerp_z":
		return &p.OrbitLerpZ
	case "color_lerp":
		return &p.ColorLerp
	case "pointer_gain":
		return &p.PointerGain
	case "pointer_cap":
		return &p.PointerCap
	case "disturbance_strength":
		return &p.DisturbanceStrength
	case "disturbance_duration":
		return &p.DisturbanceDuration
	case "disturbance_soft":
		return &p.DisturbanceSoft
	case "lensing_deflection":
		return &p.LensingDeflection
	case "photon_amplitude":
		return &p.PhotonAmplitude
	case "photon_frequency":
		return &p.PhotonFrequency
	}
	return nil
}

// ParameterControls lists the HUD-adjustable parameters.
func (p *Params) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), floatControls...)
}

// SetFloatParameter updates a float tunable, clamping to its bounds.
func (p *Params) SetFloatParameter(key string, value float64) bool {
	for _, c := range floatControls {
		if c.Key == key {
			*p.floatField(key) = c.Clamp(value)
			return true
		}
	}
	return false
}

// Parameters returns a snapshot of the current tuning.
func (p *Params) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Engine",
			Params: []core.Parameter{
				core.IntParam("seed", "Seed", int(p.Seed)),
				core.IntParam("count", "Particle count override", p.Count),
				core.BoolParam("lensing", "Lensing", p.Lensing),
			},
		},
		{
			Name: "Transition",
			Params: []core.Parameter{
				core.FloatParam("lerp", "Transition lerp", p.Lerp),
				core.FloatParam("tolerance", "Settle tolerance", p.Tolerance),
				core.IntParam("max_transition_steps", "Max transition steps", p.MaxTransitionSteps),
			},
		},
		{
			Name: "Orbit",
			Params: []core.Parameter{
				core.FloatParam("orbit_lerp_xy", "Orbit smoothing xy", p.OrbitLerpXY),
				core.FloatParam("orbit_lerp_z", "Orbit smoothing z", p.OrbitLerpZ),
				core.FloatParam("color_lerp", "Color smoothing", p.ColorLerp),
			},
		},
		{
			Name: "Interaction",
			Params: []core.Parameter{
				core.FloatParam("pointer_gain", "Pointer gain", p.PointerGain),
				core.FloatParam("pointer_cap", "Pointer cap", p.PointerCap),
				core.FloatParam("disturbance_strength", "Disturbance strength", p.DisturbanceStrength),
				core.FloatParam("disturbance_duration", "Disturbance duration", p.DisturbanceDuration),
				core.FloatParam("disturbance_soft", "Disturbance softening", p.DisturbanceSoft),
			},
		},
		{
			Name: "Lensing",
			Params: []core.Parameter{
				core.FloatParam("lensing_deflection", "Lensing deflection", p.LensingDeflection),
				core.FloatParam("photon_amplitude", "Photon ring amplitude", p.PhotonAmplitude),
				core.FloatParam("photon_frequency", "Photon ring frequency", p.PhotonFrequency),
			},
		},
	}}
}
