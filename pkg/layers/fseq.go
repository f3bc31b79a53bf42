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

package layers

import (
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/lightshow/go-fseq/pkg/log"
)

const (
	// FseqHeaderLayerNum identifies the layer
	FseqHeaderLayerNum = 1990
)

const (
	Magic        = "PSEQ"
	HeaderLength = 24
)

// FseqHeader is the fixed prefix of an FSEQ v2 file. // 24 bytes
//
//	0  magic            4 bytes
//	4  data offset      uint16
//	6  minor version    uint8
//	7  major version    uint8
//	8  header length    uint16 (not used)
//	10 channel count    uint32
//	14 frame count      uint32
//	18 step time (ms)   uint8
//	19 flags            uint8 (not used)
//	20 compression type uint8
//	21 reserved         3 bytes
type FseqHeader struct {
	Magic           [4]byte
	DataStartOffset uint16
	MinorVersion    uint8
	MajorVersion    uint8
	ChannelCount    uint32
	FrameCount      uint32
	StepTimeMs      uint8
	CompressionType uint8
}

// FseqHeaderLayer ...
type FseqHeaderLayer struct {
	layers.BaseLayer
	FseqHeader
}

var FseqHeaderLayerType = gopacket.RegisterLayerType(FseqHeaderLayerNum,
	gopacket.LayerTypeMetadata{Name: "FseqHeaderLayerType", Decoder: gopacket.DecodeFunc(DecodeFseqHeaderLayer)})

// LayerType returns the type of the FSEQ header layer in the layer catalog
func (h *FseqHeaderLayer) LayerType() gopacket.LayerType {
	return FseqHeaderLayerType
}

// CanDecode ...
func (h *FseqHeaderLayer) CanDecode() gopacket.LayerClass {
	return FseqHeaderLayerType
}

// NextLayerType ...
// The area between the fixed prefix and the data offset holds variable headers
// which are not decoded.
func (h *FseqHeaderLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

// Length returns the number of bytes the header occupies including the
// variable area up to the frame data
func (h *FseqHeader) Length() int {
	if int(h.DataStartOffset) < HeaderLength {
		return HeaderLength
	}
	return int(h.DataStartOffset)
}

// Serialize writes the fixed prefix to a buffer which is at least HeaderLength long.
// Unused bytes are zeroed.
func (h *FseqHeader) Serialize(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.DataStartOffset)
	buf[6] = h.MinorVersion
	buf[7] = h.MajorVersion
	binary.LittleEndian.PutUint16(buf[8:10], 0)
	binary.LittleEndian.PutUint32(buf[10:14], h.ChannelCount)
	binary.LittleEndian.PutUint32(buf[14:18], h.FrameCount)
	buf[18] = h.StepTimeMs
	buf[19] = 0
	buf[20] = h.CompressionType
	for i := 21; i < len(buf); i++ {
		buf[i] = 0
	}
}

// SerializeTo serializes the header and zero fills the area up to the data offset
func (h *FseqHeaderLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(h.Length())
	if err != nil {
		return err
	}
	h.Serialize(bytes)
	return nil
}

func (h *FseqHeaderLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < HeaderLength {
		df.SetTruncated()
		return ErrTooShort{What: "FSEQ header", Length: len(data), Want: HeaderLength}
	}
	h.BaseLayer = layers.BaseLayer{
		Contents: data[:HeaderLength],
		Payload:  data[HeaderLength:],
	}
	copy(h.Magic[:], data[0:4])
	h.DataStartOffset = binary.LittleEndian.Uint16(data[4:6])
	h.MinorVersion = data[6]
	h.MajorVersion = data[7]
	h.ChannelCount = binary.LittleEndian.Uint32(data[10:14])
	h.FrameCount = binary.LittleEndian.Uint32(data[14:18])
	h.StepTimeMs = data[18]
	h.CompressionType = data[20]

	log.Debug("DecodeFseqHeader: Magic: %q", h.Magic[:])
	log.Debug("DecodeFseqHeader: DataStartOffset: %d", h.DataStartOffset)
	log.Debug("DecodeFseqHeader: Version: %d.%d", h.MajorVersion, h.MinorVersion)
	log.Debug("DecodeFseqHeader: ChannelCount: %d", h.ChannelCount)
	log.Debug("DecodeFseqHeader: FrameCount: %d", h.FrameCount)
	log.Debug("DecodeFseqHeader: StepTimeMs: %d", h.StepTimeMs)
	log.Debug("DecodeFseqHeader: CompressionType: %d", h.CompressionType)
	return nil
}

func DecodeFseqHeaderLayer(data []byte, p gopacket.PacketBuilder) error {
	h := &FseqHeaderLayer{}
	err := h.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(h)
	return nil
}
