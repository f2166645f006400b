package modem

import "math"

// PCMToFloat converts int32 PCM samples to amplitudes in [-1, 1].
func PCMToFloat(input []int32) []float64 {
	output := make([]float64, len(input))
	for i, v := range input {
		output[i] = float64(v) / math.MaxInt32
	}
	return output
}

// FloatToPCM converts amplitudes in [-1, 1] to int32 PCM samples.
func FloatToPCM(input []float64) []int32 {
	output := make([]int32, len(input))
	for i, v := range input {
		output[i] = int32(v * math.MaxInt32)
	}
	return output
}
