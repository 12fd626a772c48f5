package app

// ToNDC converts window pixels (y down) to normalised device coordinates
// (y up).
func ToNDC(x, y, w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return float64(x)/float64(w)*2 - 1, 1 - float64(y)/float64(h)*2
}
