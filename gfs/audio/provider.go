package audio

import "errors"

// Provider produces audio for playback.
type Provider interface {
	// GetSamples retrieves count stereo frames as interleaved left/right
	// samples, so the result holds 2*count values.
	GetSamples(count int) []int16
}

// ErrUnavailable is returned when the binary was built without audio output.
var ErrUnavailable = errors.New("audio output not available - build with -tags audio to enable")

var _ Provider = (*Tone)(nil)
