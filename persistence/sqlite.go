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
	"context"
	"database/sql"
	"github.com/knakk/rdf"
	_ "github.com/mattn/go-sqlite3"
	"log"
	"strconv"
	"strings"
)

const (
	createVocabulariesTable = "CREATE TABLE IF NOT EXISTS main.vocabularies (vocab text UNIQUE NOT NULL, prefix text, title text, date text)"
	createTriplesTable      = "CREATE TABLE IF NOT EXISTS main.triples (vocab text NOT NULL, position integer NOT NULL, subject text NOT NULL, predicate text NOT NULL, object text NOT NULL, UNIQUE (vocab, position))"
	createVocabIdx          = "CREATE INDEX IF NOT EXISTS main.vocab_index ON triples (vocab)"
	selectVocabByUri        = "SELECT vocab FROM main.vocabularies WHERE vocab=?"
	selectVocabulary        = "SELECT vocab, prefix, title, date FROM main.vocabularies WHERE vocab=?"
	selectVocabularies      = "SELECT vocab FROM main.vocabularies ORDER BY vocab"
	selectTriples           = "SELECT subject, predicate, object FROM main.triples WHERE vocab=? ORDER BY position"
	insertVocabulary        = "INSERT INTO main.vocabularies (vocab, prefix, title, date) VALUES (?, ?, ?, ?)"
	updateVocabulary        = "UPDATE main.vocabularies SET prefix = ?, title = ?, date = ? WHERE vocab = ?"
	deleteTriples           = "DELETE FROM main.triples WHERE vocab = ?"
	insertTriple            = "INSERT INTO main.triples (vocab, position, subject, predicate, object) VALUES (?, ?, ?, ?, ?)"
)

type SqliteParams struct {
	User        string
	Pass        string
	MaxIdleConn int
	MaxOpenConn int
}

type sqliteVocabStore struct {
	ctx context.Context
	db  *sql.DB
}

// NewSqliteStore opens the database identified by dsn and creates the vocabulary tables if they do not exist.  Each
// connection to a ":memory:" database sees its own database, so in-memory stores should set MaxOpenConn to 1.
func NewSqliteStore(dsn string, params SqliteParams, ctx context.Context) (Store, error) {
	var db *sql.DB
	var err error

	if ctx == nil {
		ctx = context.Background()
	}

	if db, err = sql.Open("sqlite3", dsn); err != nil {
		return sqliteVocabStore{}, err
	}

	if params.MaxIdleConn > 0 {
		db.SetMaxIdleConns(params.MaxIdleConn)
	}

	if params.MaxOpenConn > 0 {
		db.SetMaxOpenConns(params.MaxOpenConn)
	}

	if err = db.PingContext(ctx); err != nil {
		return sqliteVocabStore{}, err
	}

	for _, ddl := range []string{createVocabulariesTable, createTriplesTable, createVocabIdx} {
		if _, err = db.ExecContext(ctx, ddl); err != nil {
			return sqliteVocabStore{}, NewErrQuery(ddl, err, "persistence", "NewSqliteStore")
		}
	}

	return sqliteVocabStore{
		ctx: ctx,
		db:  db,
	}, nil
}

func (store sqliteVocabStore) StoreVocabulary(v Vocabulary) error {
	var tx *sql.Tx
	var r *sql.Rows
	var err error

	if tx, err = store.db.BeginTx(store.ctx, nil); err != nil {
		return NewErrTx(begin, v.Vocab, err, "persistence", "StoreVocabulary")
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("%v", NewErrTx(rollback, v.Vocab, err, "persistence", "StoreVocabulary"))
		}
	}()

	if r, err = tx.QueryContext(store.ctx, selectVocabByUri, v.Vocab); err != nil {
		return NewErrQuery(selectVocabByUri, err, "persistence", "StoreVocabulary", v.Vocab)
	}

	isUpdate := r.Next() // vocabulary exists
	if err = r.Close(); err != nil {
		log.Printf("%v", NewErrClose(err, "persistence", "StoreVocabulary"))
	}

	if isUpdate {
		if _, err = tx.ExecContext(store.ctx, updateVocabulary, v.Prefix, v.Title, v.Date, v.Vocab); err != nil {
			return NewErrQuery(updateVocabulary, err, "persistence", "StoreVocabulary", v.Prefix, v.Title, v.Date, v.Vocab)
		}
		if _, err = tx.ExecContext(store.ctx, deleteTriples, v.Vocab); err != nil {
			return NewErrQuery(deleteTriples, err, "persistence", "StoreVocabulary", v.Vocab)
		}
	} else {
		if _, err = tx.ExecContext(store.ctx, insertVocabulary, v.Vocab, v.Prefix, v.Title, v.Date); err != nil {
			return NewErrQuery(insertVocabulary, err, "persistence", "StoreVocabulary", v.Vocab, v.Prefix, v.Title, v.Date)
		}
	}

	for i, triple := range v.Triples {
		subj := triple.Subj.Serialize(rdf.NTriples)
		pred := triple.Pred.Serialize(rdf.NTriples)
		obj := triple.Obj.Serialize(rdf.NTriples)
		if _, err = tx.ExecContext(store.ctx, insertTriple, v.Vocab, i, subj, pred, obj); err != nil {
			return NewErrQuery(insertTriple, err, "persistence", "StoreVocabulary", v.Vocab, strconv.Itoa(i), subj, pred, obj)
		}
	}

	if err = tx.Commit(); err != nil {
		return NewErrTx(commit, v.Vocab, err, "persistence", "StoreVocabulary")
	}

	return nil
}

func (store sqliteVocabStore) Retrieve(vocab string) (Vocabulary, error) {
	var r *sql.Rows
	var err error
	v := Vocabulary{}

	if r, err = store.db.QueryContext(store.ctx, selectVocabulary, vocab); err != nil {
		return v, NewErrQuery(selectVocabulary, err, "persistence", "Retrieve", vocab)
	}

	if !r.Next() {
		r.Close()
		return v, NewErrNotFound(vocab, "persistence", "Retrieve")
	}

	if err = r.Scan(&v.Vocab, &v.Prefix, &v.Title, &v.Date); err != nil {
		r.Close()
		return v, NewErrRowScan(selectVocabulary, err, "persistence", "Retrieve", vocab)
	}
	r.Close()

	if r, err = store.db.QueryContext(store.ctx, selectTriples, vocab); err != nil {
		return v, NewErrQuery(selectTriples, err, "persistence", "Retrieve", vocab)
	}

	defer func() {
		if err := r.Close(); err != nil {
			log.Printf("%v", NewErrClose(err, "persistence", "Retrieve"))
		}
	}()

	nTriples := strings.Builder{}
	var subj, pred, obj string
	for r.Next() {
		if err = r.Scan(&subj, &pred, &obj); err != nil {
			return v, NewErrRowScan(selectTriples, err, "persistence", "Retrieve", vocab)
		}
		nTriples.WriteString(subj + " " + pred + " " + obj + " .\n")
	}

	if err = r.Err(); err != nil {
		return v, NewErrQuery(selectTriples, err, "persistence", "Retrieve", vocab)
	}

	dec := rdf.NewTripleDecoder(strings.NewReader(nTriples.String()), rdf.NTriples)
	if v.Triples, err = dec.DecodeAll(); err != nil {
		return v, NewErrDecode(vocab, err, "persistence", "Retrieve")
	}

	return v, nil
}

func (store sqliteVocabStore) Vocabularies() ([]string, error) {
	var r *sql.Rows
	var err error
	vocabs := []string{}

	if r, err = store.db.QueryContext(store.ctx, selectVocabularies); err != nil {
		return vocabs, NewErrQuery(selectVocabularies, err, "persistence", "Vocabularies")
	}

	defer r.Close()

	var vocab string
	for r.Next() {
		if err = r.Scan(&vocab); err != nil {
			return vocabs, NewErrRowScan(selectVocabularies, err, "persistence", "Vocabularies")
		}
		vocabs = append(vocabs, vocab)
	}

	return vocabs, r.Err()
}

func (store sqliteVocabStore) Close() error {
	return store.db.Close()
}
