package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor turns "#rrggbb" into an opaque RGBA tuple.
func ParseHexColor(s string) ([4]float32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [4]float32{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [4]float32{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return [4]float32{
		float32(v>>16&0xff) / 255.0,
		float32(v>>8&0xff) / 255.0,
		float32(v&0xff) / 255.0,
		1.0,
	}, nil
}
