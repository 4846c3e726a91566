package frames

import (
	"fmt"

	"github.com/golang/glog"
)

// Store is the ordered sequence of frames making up an animation, plus the
// index of the frame currently being edited.
//
// A Store always holds at least one frame and its current index is always
// valid.
type Store struct {
	width, height int
	frames        []*Frame
	current       int
}

// NewStore creates a store holding a single cleared frame of the passed
// dimensions. All frames later appended share them.
func NewStore(width, height int) (*Store, error) {
	f, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	return &Store{
		width:  width,
		height: height,
		frames: []*Frame{f},
	}, nil
}

func (s *Store) Width() int  { return s.width }
func (s *Store) Height() int { return s.height }

// Len returns the number of frames.
func (s *Store) Len() int {
	return len(s.frames)
}

func (s *Store) checkIndex(i int) {
	if i < 0 || i >= len(s.frames) {
		panic(fmt.Sprintf("frames: frame index out of range: %d not in [0,%d)", i, len(s.frames)))
	}
}

// Frame returns the frame at index i.
func (s *Store) Frame(i int) *Frame {
	s.checkIndex(i)
	return s.frames[i]
}

// Frames returns the frames in animation order. The slice must not be
// modified.
func (s *Store) Frames() []*Frame {
	return s.frames
}

// CurrentIndex returns the index of the frame selected for editing.
func (s *Store) CurrentIndex() int {
	return s.current
}

// Current returns the frame selected for editing.
func (s *Store) Current() *Frame {
	return s.frames[s.current]
}

// Select makes the frame at index i current.
func (s *Store) Select(i int) {
	s.checkIndex(i)
	s.current = i
}

// Append adds a cleared frame at the end of the sequence and makes it
// current.
func (s *Store) Append() *Frame {
	// Dimensions were validated by NewStore.
	f := &Frame{
		width:  s.width,
		height: s.height,
		pix:    make([]byte, s.width*s.height),
	}
	s.frames = append(s.frames, f)
	s.current = len(s.frames) - 1
	glog.V(2).Infof("frames: appended frame %d", s.current)
	return f
}

// RemoveLast drops the last frame. It does nothing when only one frame
// remains.
//
// If the current index pointed at or past the new last frame, the new last
// frame becomes current; otherwise the current index is kept.
func (s *Store) RemoveLast() {
	if len(s.frames) == 1 {
		return
	}
	lastIdx := len(s.frames) - 1
	s.frames[lastIdx] = nil
	s.frames = s.frames[:lastIdx]

	if s.current >= lastIdx-1 {
		s.current = lastIdx - 1
	}
	glog.V(2).Infof("frames: removed frame %d, current is %d", lastIdx, s.current)
}
