/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package fseq

import (
	"errors"
	"io"

	"github.com/google/gopacket"

	"github.com/lightshow/go-fseq/pkg/layers"
	"github.com/lightshow/go-fseq/pkg/log"
)

var (
	_ [layers.LightChannels]string   = lightLabels
	_ [layers.ClosureChannels]string = closureLabels
)

// LightOn reports whether a light byte is in the upper half of its range
func LightOn(b byte) bool {
	return b > 127
}

// RampLevel folds a light byte around 127/128 and quantizes the distance
// from the fold into levels 0..MaxRampLevel
func RampLevel(b byte) uint8 {
	distance := b
	if b > 127 {
		distance = 255 - b
	}
	level := (distance/13 + 1) / 2
	if level > MaxRampLevel {
		return MaxRampLevel
	}
	return level
}

// ClosureLevel quantizes a closure byte. The result is not capped: 0xe0 and
// above map to 4.
func ClosureLevel(b byte) uint8 {
	return (b/32 + 1) / 2
}

type lightState [layers.LightChannels]bool
type rampState [RampChannels]uint8
type closureState1 [ClosureSplit]uint8
type closureState2 [layers.ClosureChannels - ClosureSplit]uint8

// frameState is the quantized form of a frame, the only thing kept between frames
type frameState struct {
	lights    lightState
	ramp      rampState
	closures1 closureState1
	closures2 closureState2
}

func newFrameState(f *layers.FrameLayer) *frameState {
	s := &frameState{}
	for i, b := range f.Lights {
		s.lights[i] = LightOn(b)
	}
	for i := range s.ramp {
		s.ramp[i] = RampLevel(f.Lights[i])
	}
	for i, b := range f.Closures {
		if i < ClosureSplit {
			s.closures1[i] = ClosureLevel(b)
		} else {
			s.closures2[i-ClosureSplit] = ClosureLevel(b)
		}
	}
	return s
}

// changes counts the tracked groups that differ between two states.
// A nil previous state differs in every group.
func (s *frameState) changes(prev *frameState) int {
	if prev == nil {
		return 4
	}
	count := 0
	if s.lights != prev.lights {
		count++
	}
	if s.ramp != prev.ramp {
		count++
	}
	if s.closures1 != prev.closures1 {
		count++
	}
	if s.closures2 != prev.closures2 {
		count++
	}
	return count
}

// Analysis is the outcome of a single pass over the frames of a file
type Analysis struct {
	ChangeCount  int
	LightsUsed   [layers.LightChannels]bool
	ClosuresUsed [layers.ClosureChannels]bool
}

func (a *Analysis) track(f *layers.FrameLayer) {
	for i, b := range f.Lights {
		if b > 0 {
			a.LightsUsed[i] = true
		}
	}
	for i, b := range f.Closures {
		if b > 0 {
			a.ClosuresUsed[i] = true
		}
	}
}

// UnusedChannels returns the labels of channels that were zero in every frame,
// lights first
func (a *Analysis) UnusedChannels() []string {
	unused := []string{}
	for i, used := range a.LightsUsed {
		if !used {
			unused = append(unused, LightLabel(i))
		}
	}
	for i, used := range a.ClosuresUsed {
		if !used {
			unused = append(unused, ClosureLabel(i))
		}
	}
	return unused
}

// MemoryUsage is the change count relative to Capacity
func (a *Analysis) MemoryUsage() float64 {
	return float64(a.ChangeCount) / Capacity
}

// Analyze reads hdr.FrameCount() frames from r, which must be positioned at the
// frame data, and counts state changes between consecutive frames
func Analyze(r io.Reader, hdr *FileHeader) (*Analysis, error) {
	a := &Analysis{}
	buf := make([]byte, layers.FrameDataLength)
	frame := &layers.FrameLayer{}
	var prev *frameState

	for i := uint32(0); i < hdr.FrameCount(); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, frameReadError(i, err)
		}
		if err := skipPadding(r); err != nil {
			return nil, frameReadError(i, err)
		}
		if err := frame.DecodeFromBytes(buf, gopacket.NilDecodeFeedback); err != nil {
			return nil, err
		}

		a.track(frame)
		state := newFrameState(frame)
		if n := state.changes(prev); n > 0 {
			log.Debug("Analyze: frame %d: %d changes", i, n)
			a.ChangeCount += n
			prev = state
		}
	}
	log.Debug("Analyze: %d frames, %d changes", hdr.FrameCount(), a.ChangeCount)
	return a, nil
}

// frameReadError turns an end of file into ErrShortRead. Other errors come
// from the underlying reader and are returned as they are.
func frameReadError(frame uint32, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrShortRead{Frame: frame, Err: err}
	}
	log.Debug("Analyze: frame %d: read error: %s", frame, err)
	return err
}

// skipPadding discards the padding after the closure bytes. A file may end
// without the padding of its last frame.
func skipPadding(r io.Reader) error {
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(layers.FramePadding, io.SeekCurrent)
		return err
	}
	_, err := io.CopyN(io.Discard, r, layers.FramePadding)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
