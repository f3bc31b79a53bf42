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
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/lightshow/go-fseq/pkg/fseq"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const HelpFormats = "Must be one of: text, json, yaml."

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", ErrUnknownFormat{Format: s}
}

// Document is what json and yaml outputs consist of
type Document struct {
	Name     string                  `json:"name,omitempty"`
	Results  *fseq.ValidationResults `json:"results,omitempty"`
	Error    string                  `json:"error,omitempty"`
	ExitCode int                     `json:"exitCode"`
}

type Writer struct {
	out    io.Writer
	format Format
}

func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{
		out:    out,
		format: format,
	}
}

// Write renders the outcome of validating one file. Exactly one of res and
// validationErr is expected to be set.
func (w *Writer) Write(name string, res *fseq.ValidationResults, validationErr error) error {
	doc := &Document{
		Name:     name,
		Results:  res,
		ExitCode: ExitCode(res, validationErr),
	}
	if validationErr != nil {
		doc.Error = validationErr.Error()
	}

	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.out.Write(data)
		return err
	default:
		return w.writeText(doc)
	}
}

func (w *Writer) writeText(doc *Document) error {
	if doc.Error != "" {
		_, err := fmt.Fprintln(w.out, doc.Error)
		return err
	}
	res := doc.Results
	for _, label := range res.UnusedChannels {
		if _, err := fmt.Fprintf(w.out, "%s is unused\n", label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w.out, "Found %d frames, step time of %d ms for a total duration of %s.\n",
		res.FrameCount, res.StepTimeMs, fseq.FormatDuration(res.DurationSeconds)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w.out, "Used %.2f%% of the available memory\n", res.MemoryUsage*100)
	return err
}

// ExitCode is 0 for a valid sequence that fits into memory and 1 otherwise
func ExitCode(res *fseq.ValidationResults, err error) int {
	if err != nil || res == nil || res.ExceedsMemory() {
		return 1
	}
	return 0
}
