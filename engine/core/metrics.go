package core

import "sync"

const AVG_COUNT uint8 = 30

type MetricsState struct {
	RoundAVGCounter    uint8
	MStimes            [AVG_COUNT]float64
	MSavg              float64
	Rounds             uint64
	PrimsSynced        uint64
	AccumulatedRoundMS float64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: [AVG_COUNT]float64{0},
		}
	})
	return nil
}

// MetricsUpdate records one finished sync round: its wall time in seconds and
// how many primitives it touched.
func MetricsUpdate(round_elapsed_time float64, prims int) {
	// Calculate round ms average
	round_ms := (round_elapsed_time * 1000.0)
	metricsState.MStimes[metricsState.RoundAVGCounter] = round_ms
	if metricsState.RoundAVGCounter == AVG_COUNT-1 {
		for i := uint8(0); i < AVG_COUNT; i++ {
			metricsState.MSavg += metricsState.MStimes[i]
		}

		metricsState.MSavg /= float64(AVG_COUNT)
	}
	metricsState.RoundAVGCounter++
	metricsState.RoundAVGCounter %= AVG_COUNT

	metricsState.AccumulatedRoundMS += round_ms
	metricsState.Rounds++
	metricsState.PrimsSynced += uint64(prims)
}

func MetricsRounds() uint64 {
	return metricsState.Rounds
}

func MetricsRoundTime() float64 {
	return metricsState.MSavg
}

func MetricsPrimsSynced() uint64 {
	return metricsState.PrimsSynced
}
