//
// Copyright 2021 Johns Hopkins University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package persistence

import (
	"errors"
	"github.com/mattn/go-sqlite3"
	"log"
	"time"
)

// RetryPolicy says which sqlite failures are worth another try, and how long to wait before making it.
type RetryPolicy struct {
	// wait before the second try
	Interval time.Duration
	// each later wait is the previous one multiplied by Backoff
	Backoff  float64
	MaxTries int
	Codes    []sqlite3.ErrNo
}

// retryable answers true when err wraps a sqlite3.Error carrying one of the policy's codes.
func (p RetryPolicy) retryable(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	for _, code := range p.Codes {
		if sqliteErr.Code == code {
			return true
		}
	}
	return false
}

// do invokes fn until it succeeds, fails with an error the policy does not retry, or MaxTries is reached.
func (p RetryPolicy) do(op string, fn func() error) error {
	wait := p.Interval
	for try := 1; ; try++ {
		err := fn()
		if err == nil || !p.retryable(err) {
			return err
		}

		if try >= p.MaxTries {
			return NewErrMaxRetry(err, try)
		}

		log.Printf("persistence: %s failed on try %d of %d, retrying in %s: %v", op, try, p.MaxTries, wait, err)
		time.Sleep(wait)
		wait = time.Duration(float64(wait) * p.Backoff)
	}
}

type retryStore struct {
	policy RetryPolicy
	store  Store
}

// NewRetrySqliteStore answers a Store which retries the reads and writes of store according to policy.
func NewRetrySqliteStore(store Store, policy RetryPolicy) Store {
	return retryStore{policy: policy, store: store}
}

func (rs retryStore) StoreVocabulary(v Vocabulary) error {
	return rs.policy.do("store "+v.Vocab, func() error {
		return rs.store.StoreVocabulary(v)
	})
}

func (rs retryStore) Retrieve(vocab string) (Vocabulary, error) {
	var v Vocabulary
	err := rs.policy.do("retrieve "+vocab, func() error {
		var err error
		v, err = rs.store.Retrieve(vocab)
		return err
	})
	return v, err
}

func (rs retryStore) Vocabularies() ([]string, error) {
	var vocabs []string
	err := rs.policy.do("list vocabularies", func() error {
		var err error
		vocabs, err = rs.store.Vocabularies()
		return err
	})
	return vocabs, err
}

func (rs retryStore) Close() error {
	return rs.store.Close()
}
