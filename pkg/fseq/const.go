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

const (
	MajorVersion       = 2
	MinorVersion       = 0
	MinDataStartOffset = 24
	RequiredChannels   = 48
	MinStepTimeMs      = 15
	MaxDurationSeconds = 5 * 60
	// Compression type 0 is "none"
	UncompressedType = 0
)

const (
	// Capacity is the number of state changes the controller can hold
	Capacity = 681
	// RampChannels is the number of leading light channels tracked for ramps
	RampChannels = 14
	// ClosureSplit separates the two independently tracked closure groups
	ClosureSplit = 10
	MaxRampLevel = 3
)

var lightLabels = [...]string{
	"Left Outer Main Beam",
	"Right Outer Main Beam",
	"Left Inner Main Beam",
	"Right Inner Main Beam",
	"Left Signature",
	"Right Signature",
	"Left Channel 4",
	"Right Channel 4",
	"Left Channel 5",
	"Right Channel 5",
	"Left Channel 6",
	"Right Channel 6",
	"Left Front Turn",
	"Right Front Turn",
	"Left Front Fog",
	"Right Front Fog",
	"Left Aux Park",
	"Right Aux Park",
	"Left Side Marker",
	"Right Side Marker",
	"Left Side Repeater",
	"Right Side Repeater",
	"Left Rear Turn",
	"Right Rear Turn",
	"Brake Lights",
	"Left Tail",
	"Right Tail",
	"Reverse Lights",
	"Rear Fog Lights",
	"License Plate",
}

var closureLabels = [...]string{
	"Left Falcon Door (X Only)",
	"Right Falcon Door (X Only)",
	"Left Front Door (S Only)",
	"Right Front Door (S Only)",
	"Left Mirror",
	"Right Mirror",
	"Left Front Window",
	"Left Rear Window",
	"Right Front Window",
	"Right Rear Window",
	"Liftgate",
	"Left Front Door Handle (S or X Only)",
	"Left Rear Door Handle (S or X Only)",
	"Right Front Door Handle (S or X Only)",
	"Rear Rear Door Handle (S or X Only)",
	"Charge Port",
}

// LightLabel returns the name of a light channel
func LightLabel(i int) string {
	return lightLabels[i]
}

// ClosureLabel returns the name of a closure channel
func ClosureLabel(i int) string {
	return closureLabels[i]
}
