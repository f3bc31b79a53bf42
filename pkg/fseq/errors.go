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
	"fmt"
)

// ErrUnknownFormat returned when the magic, version, data offset, frame count
// or step time of a header is not acceptable
type ErrUnknownFormat struct{}

func (e ErrUnknownFormat) Error() string {
	return "Unknown file format, expected FSEQ v2.0"
}

// ErrChannelCount returned when a file does not carry exactly RequiredChannels channels
type ErrChannelCount struct {
	Count uint32
}

func (e ErrChannelCount) Error() string {
	return fmt.Sprintf("Expected %d channels, got %d", RequiredChannels, e.Count)
}

// ErrCompression returned for compressed files
type ErrCompression struct {
	Type uint8
}

func (e ErrCompression) Error() string {
	return "Expected file format to be V2 Uncompressed"
}

// ErrDuration returned when the sequence is longer than MaxDurationSeconds
type ErrDuration struct {
	Seconds float64
}

func (e ErrDuration) Error() string {
	return fmt.Sprintf("Expected total duration to be less than 5 minutes, got %s", FormatDuration(e.Seconds))
}

// ErrShortRead returned when the file ends before all frames announced by the header were read
type ErrShortRead struct {
	Frame uint32
	Err   error
}

func (e ErrShortRead) Error() string {
	return fmt.Sprintf("Unexpected end of file while reading frame %d: %s", e.Frame, e.Err)
}

func (e ErrShortRead) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is one of the errors above,
// as opposed to a failure to access the input
func IsValidationError(err error) bool {
	switch err.(type) {
	case ErrUnknownFormat, ErrChannelCount, ErrCompression, ErrDuration, ErrShortRead:
		return true
	}
	return false
}
