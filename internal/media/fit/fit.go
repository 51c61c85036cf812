// Package fit computes bounded, aspect-preserving target dimensions. It is
// pure geometry shared by the thumbnail and video-resize flows.
package fit

// ScaleBestFit scales (w, h) down to fit within (maxW, maxH) while
// preserving aspect ratio. Dimensions already within bounds are returned
// unchanged with changed=false. Scaled dimensions are floored.
func ScaleBestFit(w, h, maxW, maxH int) (outW, outH int, changed bool) {
	if w <= maxW && h <= maxH {
		return w, h, false
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return int(float64(w) * scale), int(float64(h) * scale), true
}
