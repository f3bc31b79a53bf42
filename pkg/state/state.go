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

package state

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"github.com/lightshow/go-fseq/pkg/fseq"
	"github.com/lightshow/go-fseq/pkg/log"
	"github.com/lightshow/go-fseq/pkg/report"
)

const (
	BucketName = "validations"
)

// Record is one stored validation, keyed by the checksum of the file
type Record struct {
	Name      string                  `json:"name"`
	Checksum  string                  `json:"checksum"`
	Timestamp time.Time               `json:"timestamp"`
	Results   *fseq.ValidationResults `json:"results,omitempty"`
	Error     string                  `json:"error,omitempty"`
	ExitCode  int                     `json:"exitCode"`
}

// NewRecord ...
func NewRecord(name, checksum string, res *fseq.ValidationResults, validationErr error) *Record {
	r := &Record{
		Name:      name,
		Checksum:  checksum,
		Timestamp: time.Now().UTC(),
		Results:   res,
		ExitCode:  report.ExitCode(res, validationErr),
	}
	if validationErr != nil {
		r.Error = validationErr.Error()
	}
	return r
}

// Checksum returns the hex encoded sha256 of everything left in r
func Checksum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type State struct {
	DB *bbolt.DB
}

func NewState(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	s := &State{
		DB: db,
	}
	if err := s.CreateBucket(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close ...
func (s *State) Close() error {
	return s.DB.Close()
}

// CreateBucket ...
func (s *State) CreateBucket() error {
	return s.DB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	})
}

// Put stores a record, replacing an earlier one for the same file contents
func (s *State) Put(r *Record) error {
	log.Debug("Storing validation record: %s %s", r.Name, r.Checksum)
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.Put([]byte(r.Checksum), data)
	})
}

// Get ...
func (s *State) Get(checksum string) (*Record, error) {
	log.Debug("Getting validation record: %s", checksum)
	r := &Record{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		data := b.Get([]byte(checksum))
		if data == nil {
			return ErrRecordNotFound{Checksum: checksum}
		}
		return yaml.Unmarshal(data, r)
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns all records, most recent first
func (s *State) List() ([]*Record, error) {
	log.Debug("Getting all validation records")
	records := []*Record{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Name: BucketName}
		}
		return b.ForEach(func(k, v []byte) error {
			r := &Record{}
			if err := yaml.Unmarshal(v, r); err != nil {
				log.Error("Error while unmarshalling record %s: %s", k, err)
				return err
			}
			records = append(records, r)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// Clear removes all records
func (s *State) Clear() error {
	log.Debug("Clearing validation records")
	return s.DB.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(BucketName)); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket([]byte(BucketName))
		return err
	})
}
