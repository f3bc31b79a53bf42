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

package command

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/imroc/req"

	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/state"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Address, cfg.Port),
	}
}

func (c *ApiClient) validateUrl() string {
	return fmt.Sprintf("%s/validate", c.ApiPrefix)
}

func (c *ApiClient) historyUrl() string {
	return fmt.Sprintf("%s/history", c.ApiPrefix)
}

func apiError(r *req.Resp) error {
	return ErrApi{
		Status:  r.Response().Status,
		Message: strings.TrimSpace(r.String()),
	}
}

// Validate uploads a sequence to the server. A sequence the server rejects is
// not an error here: the returned record carries the validation error.
func (c *ApiClient) Validate(name string, data []byte) (*state.Record, error) {
	r, err := req.Post(c.validateUrl(),
		req.QueryParam{"name": name},
		req.Header{"Content-Type": "application/octet-stream"},
		data)
	if err != nil {
		return nil, err
	}
	code := r.Response().StatusCode
	if code != http.StatusOK && code != http.StatusUnprocessableEntity {
		return nil, apiError(r)
	}
	record := &state.Record{}
	if err := r.ToJSON(record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns the records stored by the server
func (c *ApiClient) History() ([]*state.Record, error) {
	r, err := req.Get(c.historyUrl())
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != http.StatusOK {
		return nil, apiError(r)
	}
	var records []*state.Record
	if err := r.ToJSON(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// HistoryRecord returns the stored record of one file
func (c *ApiClient) HistoryRecord(checksum string) (*state.Record, error) {
	r, err := req.Get(fmt.Sprintf("%s/%s", c.historyUrl(), checksum))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != http.StatusOK {
		return nil, apiError(r)
	}
	record := &state.Record{}
	if err := r.ToJSON(record); err != nil {
		return nil, err
	}
	return record, nil
}
