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
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// FrameLayerNum identifies the layer
	FrameLayerNum = 1991
)

const (
	LightChannels   = 30
	ClosureChannels = 16
	FramePadding    = 2
	// FrameDataLength is the number of meaningful bytes in a frame
	FrameDataLength = LightChannels + ClosureChannels
	FrameLength     = FrameDataLength + FramePadding
)

// FrameLayer is one step of channel data: 30 light bytes, 16 closure bytes
// and 2 bytes of padding which are never interpreted
type FrameLayer struct {
	layers.BaseLayer
	Lights   [LightChannels]byte
	Closures [ClosureChannels]byte
}

var FrameLayerType = gopacket.RegisterLayerType(FrameLayerNum,
	gopacket.LayerTypeMetadata{Name: "FrameLayerType", Decoder: gopacket.DecodeFunc(DecodeFrameLayer)})

// LayerType returns the type of the frame layer in the layer catalog
func (f *FrameLayer) LayerType() gopacket.LayerType {
	return FrameLayerType
}

// CanDecode ...
func (f *FrameLayer) CanDecode() gopacket.LayerClass {
	return FrameLayerType
}

// NextLayerType ...
func (f *FrameLayer) NextLayerType() gopacket.LayerType {
	return FrameLayerType
}

// Serialize writes the frame to a buffer which is at least FrameLength long
func (f *FrameLayer) Serialize(buf []byte) {
	copy(buf[0:LightChannels], f.Lights[:])
	copy(buf[LightChannels:FrameDataLength], f.Closures[:])
	buf[FrameDataLength] = 0
	buf[FrameDataLength+1] = 0
}

// SerializeTo serializes the frame into bytes and writes the bytes to the SerializeBuffer
func (f *FrameLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(FrameLength)
	if err != nil {
		return err
	}
	f.Serialize(bytes)
	return nil
}

// DecodeFromBytes decodes a frame. Padding is optional so that the last frame
// of a file may end right after its closure bytes.
func (f *FrameLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < FrameDataLength {
		df.SetTruncated()
		return ErrTooShort{What: "frame", Length: len(data), Want: FrameDataLength}
	}
	end := FrameLength
	if len(data) < end {
		end = len(data)
	}
	f.BaseLayer = layers.BaseLayer{
		Contents: data[:end],
		Payload:  data[end:],
	}
	copy(f.Lights[:], data[0:LightChannels])
	copy(f.Closures[:], data[LightChannels:FrameDataLength])
	return nil
}

func DecodeFrameLayer(data []byte, p gopacket.PacketBuilder) error {
	f := &FrameLayer{}
	err := f.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(f)
	if len(f.Payload) == 0 {
		return nil
	}
	// Looked up by number: FrameLayerType is initialized from this decoder.
	return p.NextDecoder(gopacket.LayerType(FrameLayerNum))
}
