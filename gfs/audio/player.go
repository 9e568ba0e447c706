//go:build audio

package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/valerio/go-gfs/gfs/display"
)

// bufferLatency is the device buffer length requested from the driver.
const bufferLatency = 50 * time.Millisecond

// Player streams a Provider to the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewPlayer opens the audio device. Only one Player may exist per process.
func NewPlayer(p Provider) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   display.SamplesPerSecond,
		ChannelCount: display.AudioChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferLatency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	slog.Info("Audio output initialized",
		"sample_rate", op.SampleRate,
		"channels", op.ChannelCount)

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(NewStream(p)),
	}, nil
}

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil && !p.player.IsPlaying() {
		p.player.Play()
	}
}

func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player != nil && p.player.IsPlaying() {
		p.player.Pause()
	}
}

// Toggle pauses or resumes playback and reports whether audio is now playing.
func (p *Player) Toggle() bool {
	if p.Playing() {
		p.Stop()
		return false
	}
	p.Start()
	return p.Playing()
}

func (p *Player) Playing() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.player != nil && p.player.IsPlaying()
}

func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
