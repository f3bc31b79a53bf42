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
	"math"
)

const (
	microsPerSecond = 1000000
	secondsPerDay   = 86400
)

// FormatDuration renders seconds as H:MM:SS, followed by .ffffff when there is
// a fractional part and preceded by a day count for one day or more
func FormatDuration(seconds float64) string {
	micros := int64(math.Round(seconds * microsPerSecond))
	secs := micros / microsPerSecond
	frac := micros % microsPerSecond
	days := secs / secondsPerDay
	secs %= secondsPerDay

	s := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	if frac != 0 {
		s += fmt.Sprintf(".%06d", frac)
	}
	switch {
	case days == 1:
		s = "1 day, " + s
	case days > 1:
		s = fmt.Sprintf("%d days, %s", days, s)
	}
	return s
}
