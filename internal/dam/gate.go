// Public domain.

package dam

// Minimum probabilities, in percent, for reporting regions.
const (
	IoGate    = 10 // all emission probability, for Io regions
	NonIoGate = 5  // non-Io emission probability, for non-Io regions
	AllGate   = 5  // all emission probability, for both
)

// gated reports whether a region query for em is suppressed by low
// emission probability.
func gated(em Emission, all, nonIo float64) bool {
	switch em {
	case Io:
		return all < IoGate
	case NonIo:
		return nonIo < NonIoGate
	}
	return all < AllGate
}
