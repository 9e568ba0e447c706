//go:build !audio

package audio

// Player stub for builds without audio output
type Player struct{}

// NewPlayer returns ErrUnavailable
func NewPlayer(p Provider) (*Player, error) {
	return nil, ErrUnavailable
}

func (p *Player) Start()        {}
func (p *Player) Stop()         {}
func (p *Player) Toggle() bool  { return false }
func (p *Player) Playing() bool { return false }
func (p *Player) Close() error  { return nil }
