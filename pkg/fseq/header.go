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

// FileHeader holds the structural parameters of a header that passed CheckHeader
type FileHeader struct {
	dataStartOffset uint16
	channelCount    uint32
	frameCount      uint32
	stepTimeMs      uint8
	compressionType uint8
}

func (h *FileHeader) DataStartOffset() uint16 { return h.dataStartOffset }
func (h *FileHeader) ChannelCount() uint32    { return h.channelCount }
func (h *FileHeader) FrameCount() uint32      { return h.frameCount }
func (h *FileHeader) StepTimeMs() uint8       { return h.stepTimeMs }
func (h *FileHeader) CompressionType() uint8  { return h.compressionType }

// DurationSeconds is frame count times step time
func (h *FileHeader) DurationSeconds() float64 {
	return durationSeconds(h.frameCount, h.stepTimeMs)
}

func durationSeconds(frameCount uint32, stepTimeMs uint8) float64 {
	return float64(frameCount) * float64(stepTimeMs) / 1000
}

// CheckHeader validates a decoded header. Checks run in a fixed order and the
// first failing one determines the error.
func CheckHeader(h *layers.FseqHeader) (*FileHeader, error) {
	if string(h.Magic[:]) != layers.Magic ||
		h.DataStartOffset < MinDataStartOffset ||
		h.FrameCount < 1 ||
		h.StepTimeMs < MinStepTimeMs ||
		h.MinorVersion != MinorVersion ||
		h.MajorVersion != MajorVersion {
		return nil, ErrUnknownFormat{}
	}
	if h.ChannelCount != RequiredChannels {
		return nil, ErrChannelCount{Count: h.ChannelCount}
	}
	if h.CompressionType != UncompressedType {
		return nil, ErrCompression{Type: h.CompressionType}
	}
	if d := durationSeconds(h.FrameCount, h.StepTimeMs); d > MaxDurationSeconds {
		return nil, ErrDuration{Seconds: d}
	}
	return &FileHeader{
		dataStartOffset: h.DataStartOffset,
		channelCount:    h.ChannelCount,
		frameCount:      h.FrameCount,
		stepTimeMs:      h.StepTimeMs,
		compressionType: h.CompressionType,
	}, nil
}

// ReadHeader reads and validates the header at the beginning of r.
// On success r is positioned at the first frame.
func ReadHeader(r io.ReadSeeker) (*FileHeader, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, layers.HeaderLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			log.Debug("ReadHeader: file too short for a header: %s", err)
			return nil, ErrUnknownFormat{}
		}
		return nil, err
	}

	layer := &layers.FseqHeaderLayer{}
	if err := layer.DecodeFromBytes(buf, gopacket.NilDecodeFeedback); err != nil {
		return nil, ErrUnknownFormat{}
	}
	hdr, err := CheckHeader(&layer.FseqHeader)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(int64(hdr.dataStartOffset), io.SeekStart); err != nil {
		return nil, err
	}
	return hdr, nil
}
