package main

import "sync"

const (
	levelQueueLen = 16
	dcAlpha       = 0.002
)

// levelStream renders the center height as 16-bit stereo PCM. Game ticks
// push one level each; Read spends framesPerLevel frames ramping linearly
// from the previous level to the next queued one, and holds the last level
// when the queue runs dry.
type levelStream struct {
	mu sync.Mutex

	queue [levelQueueLen]float32
	head  int
	count int

	framesPerLevel int
	from           float32
	pos            int
	dc             float32
}

func newLevelStream(framesPerLevel int) *levelStream {
	if framesPerLevel < 1 {
		framesPerLevel = 1
	}
	return &levelStream{framesPerLevel: framesPerLevel}
}

// Push queues a level clamped to [-1, 1] with its slowly varying offset
// removed. A full queue drops its oldest level.
func (s *levelStream) Push(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc += dcAlpha * (v - s.dc)
	if s.count == levelQueueLen {
		s.head = (s.head + 1) % levelQueueLen
		s.count--
		s.pos = 0
	}
	s.queue[(s.head+s.count)%levelQueueLen] = v - s.dc
	s.count++
}

// next returns the level of the next frame. Callers hold mu.
func (s *levelStream) next() float32 {
	if s.count == 0 {
		return s.from
	}
	to := s.queue[s.head]
	s.pos++
	v := s.from + (to-s.from)*float32(s.pos)/float32(s.framesPerLevel)
	if s.pos == s.framesPerLevel {
		s.from = to
		s.head = (s.head + 1) % levelQueueLen
		s.count--
		s.pos = 0
	}
	return v
}

func (s *levelStream) Read(p []byte) (int, error) {
	n := len(p) - len(p)%4
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i += 4 {
		v := int16(s.next() * 32767)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return n, nil
}

func (s *levelStream) Close() error {
	return nil
}
