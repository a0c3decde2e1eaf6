package renderer

import "fmt"

// fpsCounter keeps an exponentially smoothed frames-per-second estimate.
type fpsCounter struct {
	smoothed float64
	has      bool
}

func (f *fpsCounter) update(dt float64) {
	if dt <= 0 {
		return
	}
	instant := 1.0 / dt
	if !f.has {
		f.smoothed = instant
		f.has = true
		return
	}
	f.smoothed = f.smoothed*0.9 + instant*0.1
}

func (f *fpsCounter) value() (float64, bool) {
	return f.smoothed, f.has
}

// fpsText formats the overlay readout; "N/A" until a measurement exists.
func fpsText(v float64, ok bool) string {
	if !ok {
		return "FPS:  N/A"
	}
	return fmt.Sprintf("FPS: %4.0f", v)
}

// fpsColor maps the smoothed rate onto the overlay color ramp: green at or
// above 120, fading to yellow down to 60, yellow to red down to 30, solid
// red below.
func fpsColor(v float64, ok bool) [4]float32 {
	if !ok {
		return [4]float32{1, 1, 1, 1}
	}
	switch {
	case v >= 120:
		return [4]float32{0, 1, 0, 1}
	case v >= 60:
		return [4]float32{float32(1.0 - (v-60)/(120-60)), 1, 0, 1}
	case v >= 30:
		return [4]float32{1, float32((v - 30) / (60 - 30)), 0, 1}
	default:
		return [4]float32{1, 0, 0, 1}
	}
}
