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

package report

import (
	"fmt"
)

// ErrUnknownFormat returned for an output format other than text, json or yaml
type ErrUnknownFormat struct {
	Format string
}

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("Unknown output format: %q. %s", e.Format, HelpFormats)
}

// ErrExit carries a process exit code up to main
type ErrExit struct {
	Code int
}

func (e ErrExit) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
