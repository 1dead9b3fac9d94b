package util

import (
	"log"
	"math"
	"runtime"
)

// LogAdd returns log(exp(a) + exp(b)) without leaving the log domain.
// Either operand may be -Inf (probability zero).
func LogAdd(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSum folds LogAdd over values; the sum of nothing is -Inf
func LogSum(values []float64) float64 {
	retval := math.Inf(-1)
	for _, v := range values {
		retval = LogAdd(retval, v)
	}
	return retval
}

func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func LogMemory() {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	log.Println("*** Memory Info ***")
	log.Println("Bytes Allocated InUse:\t", s.Alloc)
	log.Println("Mallocs:\t\t", s.Mallocs)
	log.Println("Frees:\t\t\t", s.Frees)
	log.Println("Heap Allocated InUse:\t", s.HeapAlloc)
	log.Println("Heap Objects:\t\t", s.HeapObjects)
	log.Println("*** ***")
}
