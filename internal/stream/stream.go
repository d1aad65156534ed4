// Package stream publishes rendered frames at the composition frame rate.
package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/san-kum/barmotion/internal/render"
)

var ErrShortMessage = errors.New("stream: message shorter than header")

// Source produces encoded frames; *render.Host is one.
type Source interface {
	Frame(ctx context.Context, n int) (render.Frame, error)
}

type Sink interface {
	Publish(ctx context.Context, frame int, data []byte) error
}

// EncodeMessage prefixes data with the frame number as a big-endian uint32.
func EncodeMessage(frame int, data []byte) []byte {
	msg := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(msg, uint32(frame))
	copy(msg[4:], data)
	return msg
}

func DecodeMessage(msg []byte) (int, []byte, error) {
	if len(msg) < 4 {
		return 0, nil, ErrShortMessage
	}
	return int(binary.BigEndian.Uint32(msg)), msg[4:], nil
}

type Streamer struct {
	src     Source
	sink    Sink
	frames  int
	loop    bool
	limiter *rate.Limiter
	log     *slog.Logger
}

type Option func(*Streamer)

// WithLoop restarts from frame 0 after the last frame until ctx is done.
func WithLoop(loop bool) Option {
	return func(s *Streamer) { s.loop = loop }
}

func NewStreamer(src Source, sink Sink, fps, frames int, opts ...Option) *Streamer {
	s := &Streamer{
		src:     src,
		sink:    sink,
		frames:  frames,
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		log:     slog.Default().With(slog.String("module", "stream")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run publishes frames paced at fps and returns how many were sent.
func (s *Streamer) Run(ctx context.Context) (int, error) {
	sent := 0
	for pass := 0; ; pass++ {
		for n := 0; n < s.frames; n++ {
			if err := s.limiter.Wait(ctx); err != nil {
				return sent, err
			}
			f, err := s.src.Frame(ctx, n)
			if err != nil {
				return sent, fmt.Errorf("frame %d: %w", n, err)
			}
			if f.Skipped {
				continue
			}
			if err := s.sink.Publish(ctx, n, f.Data); err != nil {
				return sent, fmt.Errorf("publish frame %d: %w", n, err)
			}
			sent++
		}
		s.log.Debug("pass complete", slog.Int("pass", pass), slog.Int("sent", sent))
		if !s.loop {
			return sent, nil
		}
	}
}
