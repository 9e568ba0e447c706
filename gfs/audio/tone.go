package audio

import (
	"math"

	"github.com/valerio/go-gfs/gfs/display"
)

// Tone is a sine wave generator. The running sample index carries over
// between calls so consecutive buffers join without a click.
type Tone struct {
	samplesPerSecond   int
	hz                 int
	volume             int
	wavePeriod         int
	runningSampleIndex uint32
}

// NewTone creates a generator for a hz tone at the given sample rate and
// peak amplitude.
func NewTone(samplesPerSecond, hz, volume int) *Tone {
	period := 1
	if hz > 0 && samplesPerSecond >= hz {
		period = samplesPerSecond / hz
	}
	return &Tone{
		samplesPerSecond: samplesPerSecond,
		hz:               hz,
		volume:           volume,
		wavePeriod:       period,
	}
}

// NewDefaultTone creates the 256 Hz test tone at 48 kHz.
func NewDefaultTone() *Tone {
	return NewTone(display.SamplesPerSecond, display.ToneHz, display.ToneVolume)
}

// Fill writes len(dst)/2 stereo frames into dst. A trailing odd sample is
// left untouched.
func (t *Tone) Fill(dst []int16) {
	for i := 0; i+1 < len(dst); i += display.AudioChannels {
		position := 2 * math.Pi * float64(t.runningSampleIndex) / float64(t.wavePeriod)
		value := int16(math.Sin(position) * float64(t.volume))
		dst[i] = value
		dst[i+1] = value
		t.runningSampleIndex++
	}
}

func (t *Tone) GetSamples(count int) []int16 {
	if count <= 0 {
		return nil
	}
	samples := make([]int16, count*display.AudioChannels)
	t.Fill(samples)
	return samples
}

// WavePeriod is the number of frames in one cycle of the wave.
func (t *Tone) WavePeriod() int { return t.wavePeriod }

// RunningSampleIndex is the number of frames generated so far.
func (t *Tone) RunningSampleIndex() uint32 { return t.runningSampleIndex }
