package game

import (
	"fmt"
	"math"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// bands splits samples into n equal segments and returns each segment's
// compressed RMS blended into prev with the given smoothing factor.
func bands(prev []float64, samples [][2]float64, n int, smoothing float64) []float64 {
	if len(prev) != n {
		prev = make([]float64, n)
	}
	if len(samples) == 0 {
		for i := range prev {
			prev[i] *= smoothing
		}
		return prev
	}

	segmentSize := int(math.Max(1, float64(len(samples))/float64(n)))
	for i := 0; i < n; i++ {
		start := i * segmentSize
		end := start + segmentSize
		if start >= len(samples) {
			break
		}
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for s := start; s < end; s++ {
			mono := (samples[s][0] + samples[s][1]) * 0.5
			sumSquares += mono * mono
		}

		rms := math.Sqrt(sumSquares / float64(end-start))
		mag := clamp01(math.Pow(rms, 0.3)) // aggressive compression for visual effect

		prev[i] = smoothing*prev[i] + (1-smoothing)*mag
	}
	return prev
}

// mean returns the average of v, or 0 for an empty slice.
func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// seekSample converts a progress fraction into a sample index that is
// valid for a stream of length samples.
func seekSample(progress float64, duration time.Duration, sampleRate int, length int) int {
	progress = clamp01(progress)
	pos := int(progress * duration.Seconds() * float64(sampleRate))
	if pos >= length {
		pos = length - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
