package utils

import "strconv"

const sizeUnitStep = 1024

var sizeUnits = []string{"kb", "mb", "gb", "tb"}

// FormatFileSize renders a byte count with a binary unit suffix. Values below
// ten units keep one decimal place.
func FormatFileSize(byteCount int64) string {
	if byteCount < sizeUnitStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + "b"
	}
	scaled := float64(byteCount) / sizeUnitStep
	unitIndex := 0
	for scaled >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		scaled /= sizeUnitStep
		unitIndex++
	}
	precision := 0
	if scaled < 10 && scaled != float64(int64(scaled)) {
		precision = 1
	}
	return strconv.FormatFloat(scaled, 'f', precision, 64) + sizeUnits[unitIndex]
}
