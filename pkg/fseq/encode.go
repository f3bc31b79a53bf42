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
	"github.com/google/gopacket"

	"github.com/lightshow/go-fseq/pkg/layers"
)

// NewHeader returns a header which passes CheckHeader for any frame count and
// step time within limits
func NewHeader(frameCount uint32, stepTimeMs uint8) layers.FseqHeader {
	h := layers.FseqHeader{
		DataStartOffset: MinDataStartOffset,
		MinorVersion:    MinorVersion,
		MajorVersion:    MajorVersion,
		ChannelCount:    RequiredChannels,
		FrameCount:      frameCount,
		StepTimeMs:      stepTimeMs,
		CompressionType: UncompressedType,
	}
	copy(h.Magic[:], layers.Magic)
	return h
}

// Encode serializes a header followed by frames. The header is written as is,
// it is not checked and its frame count need not match len(frames).
func Encode(hdr layers.FseqHeader, frames []*layers.FrameLayer) ([]byte, error) {
	ls := make([]gopacket.SerializableLayer, 0, len(frames)+1)
	ls = append(ls, &layers.FseqHeaderLayer{FseqHeader: hdr})
	for _, f := range frames {
		ls = append(ls, f)
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, ls...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeFrames builds a valid file from frames with the given step time
func EncodeFrames(frames []*layers.FrameLayer, stepTimeMs uint8) ([]byte, error) {
	return Encode(NewHeader(uint32(len(frames)), stepTimeMs), frames)
}
