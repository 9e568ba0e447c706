package audio

import (
	"encoding/binary"
	"sync"

	"github.com/valerio/go-gfs/gfs/display"
)

// maxFramesPerRead bounds a single Read to one second of audio.
const maxFramesPerRead = display.AudioBufferSize / display.BytesPerSample

// Stream adapts a Provider to an io.Reader of signed 16-bit little-endian
// interleaved stereo, the format the audio device consumes.
type Stream struct {
	provider Provider
	mutex    sync.Mutex

	out []byte
	// bytes of a frame that did not fit in the previous read
	pending [display.BytesPerSample]byte
	npend   int
}

func NewStream(p Provider) *Stream {
	return &Stream{provider: p}
}

// Read fills p with the next samples. It never returns an error and always
// fills p completely when len(p) does not exceed one second of audio.
func (s *Stream) Read(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := copy(p, s.pending[:s.npend])
	copy(s.pending[:], s.pending[n:s.npend])
	s.npend -= n
	if n == len(p) {
		return n, nil
	}

	rest := p[n:]
	frames := (len(rest) + display.BytesPerSample - 1) / display.BytesPerSample
	frames = min(frames, maxFramesPerRead)

	samples := s.provider.GetSamples(frames)
	size := len(samples) * 2
	if cap(s.out) < size {
		s.out = make([]byte, size)
	}
	s.out = s.out[:size]
	for i, v := range samples {
		binary.LittleEndian.PutUint16(s.out[i*2:], uint16(v))
	}

	m := copy(rest, s.out)
	s.npend = copy(s.pending[:], s.out[m:])
	return n + m, nil
}
