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
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightshow/go-fseq/pkg/layers"
)

func filledFrame(light, closure byte) *layers.FrameLayer {
	f := &layers.FrameLayer{}
	for i := range f.Lights {
		f.Lights[i] = light
	}
	for i := range f.Closures {
		f.Closures[i] = closure
	}
	return f
}

func copyFrame(f *layers.FrameLayer) *layers.FrameLayer {
	c := &layers.FrameLayer{}
	c.Lights = f.Lights
	c.Closures = f.Closures
	return c
}

// analyzeFrames encodes frames into a valid file and analyzes it
func analyzeFrames(t *testing.T, frames ...*layers.FrameLayer) *Analysis {
	t.Helper()
	data, err := EncodeFrames(frames, 20)
	require.NoError(t, err)
	r := bytes.NewReader(data)
	hdr, err := ReadHeader(r)
	require.NoError(t, err)
	a, err := Analyze(r, hdr)
	require.NoError(t, err)
	return a
}

func TestLightOn(t *testing.T) {
	assert.False(t, LightOn(0))
	assert.False(t, LightOn(127))
	assert.True(t, LightOn(128))
	assert.True(t, LightOn(255))
}

func TestRampLevel(t *testing.T) {
	tests := []struct {
		b    byte
		want uint8
	}{
		{0, 0},
		{12, 0},
		{13, 1},
		{38, 1},
		{39, 2},
		{64, 2},
		{65, 3},
		{127, 3},
		{128, 3},
		{190, 3},
		{191, 2},
		{242, 1},
		{243, 0},
		{255, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RampLevel(tt.b), "byte %d", tt.b)
	}
}

func TestRampLevelSymmetry(t *testing.T) {
	for b := 0; b <= 127; b++ {
		assert.Equal(t, RampLevel(byte(b)), RampLevel(byte(255-b)), "byte %d", b)
	}
}

func TestClosureLevel(t *testing.T) {
	tests := []struct {
		b    byte
		want uint8
	}{
		{0, 0},
		{31, 0},
		{32, 1},
		{95, 1},
		{96, 2},
		{159, 2},
		{160, 3},
		{223, 3},
		{224, 4},
		{255, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClosureLevel(tt.b), "byte %d", tt.b)
	}
}

func TestAnalyzeFirstFrame(t *testing.T) {
	a := analyzeFrames(t, filledFrame(0, 0))
	assert.Equal(t, 4, a.ChangeCount)

	a = analyzeFrames(t, filledFrame(200, 100))
	assert.Equal(t, 4, a.ChangeCount)
}

func TestAnalyzeSteadyFrames(t *testing.T) {
	a := analyzeFrames(t, filledFrame(0, 0), filledFrame(0, 0), filledFrame(0, 0))
	assert.Equal(t, 4, a.ChangeCount)
	assert.Len(t, a.UnusedChannels(), layers.LightChannels+layers.ClosureChannels)
}

func TestAnalyzeOffToFull(t *testing.T) {
	// 0x00 and 0xff fold to the same ramp level, so only three groups change
	a := analyzeFrames(t, filledFrame(0, 0), filledFrame(0xff, 0xff))
	assert.Equal(t, 7, a.ChangeCount)
	assert.Empty(t, a.UnusedChannels())
}

func TestAnalyzeGroupChanges(t *testing.T) {
	f0 := filledFrame(0, 0)

	f1 := copyFrame(f0)
	f1.Lights[20] = 200 // on, outside the ramp channels

	f2 := copyFrame(f1)
	f2.Lights[0] = 13 // off, ramp level 1

	f3 := copyFrame(f2)
	f3.Closures[0] = 32

	f4 := copyFrame(f3)
	f4.Closures[15] = 32

	f5 := copyFrame(f4)
	f5.Closures[10] = 10 // level 0, used but no change

	f6 := copyFrame(f5)
	f6.Lights[29] = 1 // off, used but no change

	a := analyzeFrames(t, f0, f1, f2, f3, f4, f5, f6)
	assert.Equal(t, 8, a.ChangeCount)

	for i, used := range a.LightsUsed {
		assert.Equal(t, i == 0 || i == 20 || i == 29, used, "light %d", i)
	}
	for i, used := range a.ClosuresUsed {
		assert.Equal(t, i == 0 || i == 10 || i == 15, used, "closure %d", i)
	}
}

func TestAnalyzeToggle(t *testing.T) {
	on := filledFrame(0, 0)
	on.Lights[5] = 0x80
	off := filledFrame(0, 0)

	// the ramp level of light 5 also moves between 0 and 3
	a := analyzeFrames(t, off, on, off, on)
	assert.Equal(t, 4+2+2+2, a.ChangeCount)
}

func TestAnalyzeUsageIsSticky(t *testing.T) {
	first := filledFrame(0, 0)
	first.Lights[3] = 1
	first.Closures[4] = 1
	a := analyzeFrames(t, first, filledFrame(0, 0), filledFrame(0, 0))

	assert.True(t, a.LightsUsed[3])
	assert.True(t, a.ClosuresUsed[4])
	unused := a.UnusedChannels()
	assert.NotContains(t, unused, LightLabel(3))
	assert.NotContains(t, unused, ClosureLabel(4))
	assert.Len(t, unused, layers.LightChannels+layers.ClosureChannels-2)
}

func TestUnusedChannelsOrder(t *testing.T) {
	a := &Analysis{}
	unused := a.UnusedChannels()
	require.Len(t, unused, 46)
	assert.Equal(t, "Left Outer Main Beam", unused[0])
	assert.Equal(t, "License Plate", unused[29])
	assert.Equal(t, "Left Falcon Door (X Only)", unused[30])
	assert.Equal(t, "Charge Port", unused[45])
}

func TestAnalyzeShortRead(t *testing.T) {
	frames := []*layers.FrameLayer{filledFrame(0, 0), filledFrame(1, 1)}
	data, err := Encode(NewHeader(3, 20), frames)
	require.NoError(t, err)

	t.Run("missing frame", func(t *testing.T) {
		r := bytes.NewReader(data)
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		_, err = Analyze(r, hdr)
		var short ErrShortRead
		require.ErrorAs(t, err, &short)
		assert.Equal(t, uint32(2), short.Frame)
		assert.True(t, errors.Is(err, io.EOF))
		assert.True(t, IsValidationError(err))
	})

	t.Run("partial frame", func(t *testing.T) {
		r := bytes.NewReader(data[:len(data)-10])
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		_, err = Analyze(r, hdr)
		var short ErrShortRead
		require.ErrorAs(t, err, &short)
		assert.Equal(t, uint32(1), short.Frame)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})
}

// faultyReader fails with err once limit bytes were read
type faultyReader struct {
	r     io.Reader
	limit int
	err   error
}

func (f *faultyReader) Read(p []byte) (int, error) {
	if f.limit <= 0 {
		return 0, f.err
	}
	if len(p) > f.limit {
		p = p[:f.limit]
	}
	n, err := f.r.Read(p)
	f.limit -= n
	return n, err
}

// failingSeeker reads normally but cannot seek
type failingSeeker struct {
	io.Reader
	err error
}

func (f failingSeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, f.err
}

func TestAnalyzeReadFailure(t *testing.T) {
	frames := []*layers.FrameLayer{filledFrame(0, 0), filledFrame(1, 1)}
	data, err := EncodeFrames(frames, 20)
	require.NoError(t, err)
	errDisk := errors.New("input/output error")

	t.Run("read", func(t *testing.T) {
		r := bytes.NewReader(data)
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		_, err = Analyze(&faultyReader{r: r, limit: layers.FrameLength + 10, err: errDisk}, hdr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errDisk))
		var short ErrShortRead
		assert.False(t, errors.As(err, &short))
		assert.False(t, IsValidationError(err))
	})

	t.Run("seek", func(t *testing.T) {
		r := bytes.NewReader(data)
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		_, err = Analyze(failingSeeker{Reader: r, err: errDisk}, hdr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errDisk))
		assert.False(t, IsValidationError(err))
	})
}

func TestAnalyzeLastFrameWithoutPadding(t *testing.T) {
	frames := []*layers.FrameLayer{filledFrame(0, 0), filledFrame(0xff, 0xff)}
	data, err := EncodeFrames(frames, 20)
	require.NoError(t, err)
	data = data[:len(data)-layers.FramePadding]

	t.Run("seeker", func(t *testing.T) {
		r := bytes.NewReader(data)
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		a, err := Analyze(r, hdr)
		require.NoError(t, err)
		assert.Equal(t, 7, a.ChangeCount)
	})

	t.Run("plain reader", func(t *testing.T) {
		r := bytes.NewReader(data)
		hdr, err := ReadHeader(r)
		require.NoError(t, err)
		a, err := Analyze(struct{ io.Reader }{r}, hdr)
		require.NoError(t, err)
		assert.Equal(t, 7, a.ChangeCount)
	})
}

func TestAnalyzeIgnoresPadding(t *testing.T) {
	frames := []*layers.FrameLayer{filledFrame(0, 0), filledFrame(0, 0)}
	data, err := EncodeFrames(frames, 20)
	require.NoError(t, err)
	// padding of the first frame
	data[layers.HeaderLength+layers.FrameDataLength] = 0xff
	data[layers.HeaderLength+layers.FrameDataLength+1] = 0xff

	r := bytes.NewReader(data)
	hdr, err := ReadHeader(r)
	require.NoError(t, err)
	a, err := Analyze(struct{ io.Reader }{r}, hdr)
	require.NoError(t, err)
	assert.Equal(t, 4, a.ChangeCount)
	assert.Len(t, a.UnusedChannels(), 46)
}
