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

package sample

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lightshow/go-fseq/pkg/fseq"
	"github.com/lightshow/go-fseq/pkg/layers"
)

const (
	FramesOptionName  = "frames"
	StepOptionName    = "step"
	PatternOptionName = "pattern"
)

const (
	PatternOff   = "off"
	PatternBlink = "blink"
	PatternChase = "chase"
)

// Frames generates a test pattern
//
//	off   all channels zero
//	blink all lights full on every other frame
//	chase one light at a time walks through the lights while the
//	      closures slowly ramp up one after another
func Frames(pattern string, count int) ([]*layers.FrameLayer, error) {
	frames := make([]*layers.FrameLayer, count)
	for i := range frames {
		f := &layers.FrameLayer{}
		switch pattern {
		case PatternOff:
		case PatternBlink:
			if i%2 == 0 {
				for c := range f.Lights {
					f.Lights[c] = 0xff
				}
			}
		case PatternChase:
			f.Lights[i%layers.LightChannels] = 0xff
			f.Closures[(i/32)%layers.ClosureChannels] = byte(i%32) * 8
		default:
			return nil, ErrUnknownPattern{Pattern: pattern}
		}
		frames[i] = f
	}
	return frames, nil
}

func NewCommand() *cobra.Command {
	var frameCount int
	var step uint8
	var pattern string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a synthetic sequence to stdout",
		Example: `
# go-fseq sample --pattern chase --frames 500 > chase.fseq`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frameCount < 1 {
				return fmt.Errorf("At least one frame is required, got %d", frameCount)
			}
			frames, err := Frames(pattern, frameCount)
			if err != nil {
				return err
			}
			data, err := fseq.EncodeFrames(frames, step)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().IntVar(&frameCount, FramesOptionName, 100, "Number of frames")
	cmd.Flags().Uint8Var(&step, StepOptionName, 20, "Step time in ms")
	cmd.Flags().StringVar(&pattern, PatternOptionName, PatternChase,
		fmt.Sprintf("Pattern. Must be one of: %s, %s, %s.", PatternOff, PatternBlink, PatternChase))
	return cmd
}

// ErrUnknownPattern returned for a pattern name Frames does not know
type ErrUnknownPattern struct {
	Pattern string
}

func (e ErrUnknownPattern) Error() string {
	return fmt.Sprintf("Unknown pattern: %s", e.Pattern)
}
