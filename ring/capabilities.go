package ring

import "github.com/klauspost/cpuid/v2"

// cpuFeatures records the subset of hardware capabilities that influence
// which NTT code path a Ring selects. Detected once at process start via
// klauspost/cpuid, mirroring how lattigo's ring package branches between
// parallel NTT/NTTBarrett implementations depending on modulus size; here
// the branch is hardware capability rather than modulus size.
type cpuFeatures struct {
	hasAVX2 bool
	hasBMI2 bool
	hasADX  bool
}

var detectedFeatures = cpuFeatures{
	hasAVX2: cpuid.CPU.Supports(cpuid.AVX2),
	hasBMI2: cpuid.CPU.Supports(cpuid.BMI2),
	hasADX:  cpuid.CPU.Supports(cpuid.ADX),
}

// wideStride reports whether the current CPU supports the instruction set
// this package's NTT butterfly loop prefers for unrolling four lanes at a
// time instead of one. The butterfly itself is written in portable Go either
// way — this only selects the unroll factor.
func wideStride() bool {
	return detectedFeatures.hasAVX2 && detectedFeatures.hasBMI2
}

// CPUInfo summarizes the detected capabilities for logging / diagnostics.
func CPUInfo() string {
	if wideStride() {
		return "avx2+bmi2: 4-wide NTT butterfly"
	}
	return "generic: 1-wide NTT butterfly"
}
