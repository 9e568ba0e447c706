package bmr

import (
	"errors"
	"fmt"

	"github.com/valerio/go-gfs/gfs/memory"
)

// DefaultCommandCapacity is the command buffer size used when none is
// configured.
const DefaultCommandCapacity = memory.Kilobyte

// CommandBuffer is an append-only queue of encoded commands backed by a
// fixed-capacity arena. It is rewound, not cleared, between frames.
type CommandBuffer struct {
	arena *memory.Arena
	count int
}

// NewCommandBuffer allocates a command buffer of capacity bytes.
func NewCommandBuffer(capacity int) (*CommandBuffer, error) {
	arena, err := memory.NewArena(capacity)
	if err != nil {
		return nil, fmt.Errorf("command buffer: %w", err)
	}
	return &CommandBuffer{arena: arena}, nil
}

// Record appends cmd. If it does not fit, nothing is written and the error
// wraps ErrCapacityExceeded.
func (q *CommandBuffer) Record(cmd Command) error {
	n := EncodedSize(cmd)
	dst, err := q.arena.Alloc(n)
	if err != nil {
		if errors.Is(err, memory.ErrOutOfSpace) {
			return fmt.Errorf("%w: %s needs %d bytes, %d of %d free",
				ErrCapacityExceeded, cmd.Tag(), n, q.Free(), q.Capacity())
		}
		return err
	}

	Encode(dst, cmd)
	q.count++
	return nil
}

// Reset empties the buffer in O(1).
func (q *CommandBuffer) Reset() {
	q.arena.Reset()
	q.count = 0
}

// ForEach decodes the commands in submission order and calls visit for
// each one until visit returns false. It does not modify the buffer and
// can be repeated any number of times.
func (q *CommandBuffer) ForEach(visit func(Command) bool) error {
	stream := q.arena.Bytes()
	for i := 0; i < q.count; i++ {
		cmd, n, err := Decode(stream)
		if err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
		stream = stream[n:]
		if !visit(cmd) {
			return nil
		}
	}
	return nil
}

// Commands decodes the whole buffer into a slice.
func (q *CommandBuffer) Commands() ([]Command, error) {
	cmds := make([]Command, 0, q.count)
	err := q.ForEach(func(cmd Command) bool {
		cmds = append(cmds, cmd)
		return true
	})
	return cmds, err
}

// Len is the number of recorded commands.
func (q *CommandBuffer) Len() int { return q.count }

// Size is the number of bytes used.
func (q *CommandBuffer) Size() int { return q.arena.Occupied() }

// Capacity is the total number of bytes available per frame.
func (q *CommandBuffer) Capacity() int { return q.arena.Capacity() }

// Free is the number of bytes still available.
func (q *CommandBuffer) Free() int { return q.arena.Capacity() - q.arena.Occupied() }

// Bytes returns the encoded stream. The slice aliases the buffer.
func (q *CommandBuffer) Bytes() []byte { return q.arena.Bytes() }

// Release frees the backing arena. Subsequent records fail.
func (q *CommandBuffer) Release() {
	q.arena.Free()
	q.count = 0
}
