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
	"io"
	"time"

	"github.com/lightshow/go-fseq/pkg/log"
)

// ValidationResults ...
type ValidationResults struct {
	FrameCount      uint32   `json:"frameCount"`
	StepTimeMs      uint8    `json:"stepTimeMs"`
	DurationSeconds float64  `json:"durationSeconds"`
	MemoryUsage     float64  `json:"memoryUsage"`
	ChangeCount     int      `json:"changeCount"`
	UnusedChannels  []string `json:"unusedChannels"`
}

// Duration ...
func (r *ValidationResults) Duration() time.Duration {
	return time.Duration(r.FrameCount) * time.Duration(r.StepTimeMs) * time.Millisecond
}

// ExceedsMemory reports whether the sequence needs more than the controller can hold
func (r *ValidationResults) ExceedsMemory() bool {
	return r.MemoryUsage > 1
}

// Validate checks the header of r and analyzes all of its frames
func Validate(r io.ReadSeeker) (*ValidationResults, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	log.Debug("Validate: header ok: offset %d, frames %d, step %d ms",
		hdr.DataStartOffset(), hdr.FrameCount(), hdr.StepTimeMs())

	analysis, err := Analyze(r, hdr)
	if err != nil {
		return nil, err
	}
	return &ValidationResults{
		FrameCount:      hdr.FrameCount(),
		StepTimeMs:      hdr.StepTimeMs(),
		DurationSeconds: hdr.DurationSeconds(),
		MemoryUsage:     analysis.MemoryUsage(),
		ChangeCount:     analysis.ChangeCount,
		UnusedChannels:  analysis.UnusedChannels(),
	}, nil
}
