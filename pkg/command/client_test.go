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
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/fseq"
	"github.com/lightshow/go-fseq/pkg/layers"
	"github.com/lightshow/go-fseq/pkg/srv"
	"github.com/lightshow/go-fseq/pkg/state"
)

func newTestClient(t *testing.T, withState bool) *ApiClient {
	t.Helper()
	cfg := config.NewDefaultConfig()
	var st *state.State
	if withState {
		var err error
		st, err = state.NewState(filepath.Join(t.TempDir(), "history.db"))
		require.NoError(t, err)
		t.Cleanup(func() { st.Close() })
	}
	ts := httptest.NewServer(srv.NewApiServer(context.Background(), cfg, st).Handler())
	t.Cleanup(ts.Close)

	c := NewApiClient(cfg)
	c.ApiPrefix = ts.URL + "/api"
	return c
}

func TestNewApiClient(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Address = "10.0.0.5"
	cfg.Port = 9100
	assert.Equal(t, "http://10.0.0.5:9100/api", NewApiClient(cfg).ApiPrefix)
}

func TestValidate(t *testing.T) {
	c := newTestClient(t, true)
	data, err := fseq.EncodeFrames([]*layers.FrameLayer{{}, {}}, 25)
	require.NoError(t, err)

	record, err := c.Validate("quiet.fseq", data)
	require.NoError(t, err)
	assert.Equal(t, "quiet.fseq", record.Name)
	assert.Equal(t, 0, record.ExitCode)
	require.NotNil(t, record.Results)
	assert.Equal(t, 4, record.Results.ChangeCount)
	assert.Len(t, record.Results.UnusedChannels, 46)

	records, err := c.History()
	require.NoError(t, err)
	require.Len(t, records, 1)

	stored, err := c.HistoryRecord(record.Checksum)
	require.NoError(t, err)
	assert.Equal(t, "quiet.fseq", stored.Name)
}

func TestValidateRejected(t *testing.T) {
	c := newTestClient(t, false)
	h := fseq.NewHeader(1, 10)
	data, err := fseq.Encode(h, []*layers.FrameLayer{{}})
	require.NoError(t, err)

	record, err := c.Validate("fast.fseq", data)
	require.NoError(t, err)
	assert.Equal(t, 1, record.ExitCode)
	assert.Equal(t, fseq.ErrUnknownFormat{}.Error(), record.Error)
}

func TestHistoryDisabled(t *testing.T) {
	c := newTestClient(t, false)
	_, err := c.History()
	var apiErr ErrApi
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "404 Not Found", apiErr.Status)
	assert.Equal(t, srv.ErrHistoryDisabled{}.Error(), apiErr.Message)
}
