package types

import "fmt"

// Milliwatts is a float64 wrapper representing instantaneous power in mW.
type Milliwatts float64

// Humanized returns a human-readable string with automatic unit (mW, W, kW).
func (p Milliwatts) Humanized() string {
	v := float64(p)
	switch {
	case v >= 1e6 || v <= -1e6:
		return fmt.Sprintf("%.2f kW", v/1e6)
	case v >= 1e3 || v <= -1e3:
		return fmt.Sprintf("%.2f W", v/1e3)
	default:
		return fmt.Sprintf("%.3f mW", v)
	}
}

// W returns the power in Watts.
func (p Milliwatts) W() float64 { return float64(p) / 1e3 }

// KW returns the power in kilowatts.
func (p Milliwatts) KW() float64 { return float64(p) / 1e6 }

// MilliwattHours is a float64 wrapper representing energy in mWh.
type MilliwattHours float64

// Humanized returns a human-readable string with automatic unit (mWh, Wh, kWh).
func (e MilliwattHours) Humanized() string {
	v := float64(e)
	switch {
	case v >= 1e6 || v <= -1e6:
		return fmt.Sprintf("%.2f kWh", v/1e6)
	case v >= 1e3 || v <= -1e3:
		return fmt.Sprintf("%.2f Wh", v/1e3)
	default:
		return fmt.Sprintf("%.3f mWh", v)
	}
}

// Wh returns the energy in Watt-hours.
func (e MilliwattHours) Wh() float64 { return float64(e) / 1e3 }

// KWh returns the energy in kilowatt-hours.
func (e MilliwattHours) KWh() float64 { return float64(e) / 1e6 }
