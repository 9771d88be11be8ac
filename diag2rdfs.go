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

package main

import (
	"bytes"
	"diag2rdfs/convert"
	"diag2rdfs/diagerr"
	"diag2rdfs/diagram"
	"diag2rdfs/encode"
	"diag2rdfs/env"
	"diag2rdfs/persistence"
	"diag2rdfs/retrieve"
	"errors"
	"flag"
	"fmt"
	"github.com/mattn/go-sqlite3"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Usage: ./diag2rdfs [-format turtle|ntriples|jsonld] [-legacy-labels] [-dsn <sqlite dsn>] [-v] <diagram.csv|uri>
// DIAG2RDFS_FORMAT turtle
// DIAG2RDFS_LEGACY_LABELS false
// DIAG2RDFS_SQLITE_DSN (unset: nothing is stored)
// DIAG2RDFS_HTTP_TIMEOUT_MS 30000
// DIAG2RDFS_HTTP_USER
// DIAG2RDFS_HTTP_PASS
// DIAG2RDFS_USER_AGENT diag2rdfs
// DIAG2RDFS_VERBOSE false
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run converts the diagram named by args and writes the vocabulary to out, answering the process exit code.
// Diagnostics go to the standard logger.
func run(args []string, out, usageOut io.Writer) int {
	environment := env.New()

	fs := flag.NewFlagSet("diag2rdfs", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() {
		fmt.Fprintf(usageOut, "Usage: %s [-format %s] [-legacy-labels] [-dsn <sqlite dsn>] [-v] <diagram.csv|uri>\n", fs.Name(), strings.Join(encode.Names(), "|"))
		fmt.Fprintf(usageOut, "  example: %s -format turtle -dsn %s desm_model.csv\n", fs.Name(), "file:/tmp/diag2rdfs.db?mode=rwc")
		fs.PrintDefaults()
	}

	legacyDefault, err := parseBool(env.LEGACY_LABELS, environment.LegacyLabels)
	if err != nil {
		return report(err)
	}

	verboseDefault, err := parseBool(env.VERBOSE, environment.Verbose)
	if err != nil {
		return report(err)
	}

	formatName := fs.String("format", environment.Format, "output format, one of "+strings.Join(encode.Names(), ", "))
	legacyLabels := fs.Bool("legacy-labels", legacyDefault, "assert subclass-of and scope note values as rdfs:label literals")
	dsn := fs.String("dsn", environment.SqliteDsn, "the DSN of the Sqlite db the vocabulary is stored in (optional)")
	verbose := fs.Bool("v", verboseDefault, "log conversion progress")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return diagerr.ExitOk
		}
		return diagerr.ExitUsage
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return diagerr.ExitUsage
	}

	format, err := encode.ParseFormat(*formatName)
	if err != nil {
		return report(err)
	}

	source := fs.Arg(0)
	d, err := loadDiagram(source, environment)
	if err != nil {
		return report(err)
	}

	c := convert.New(convert.Options{LegacyLabels: *legacyLabels})
	if *verbose {
		c.EventHandler = convert.LogEventHandler
	}

	if err = c.Convert(d); err != nil {
		return report(err)
	}

	result := bytes.Buffer{}
	if err = encode.Write(&result, format, encode.FromConverter(c)); err != nil {
		return report(err)
	}

	if strings.TrimSpace(*dsn) != "" {
		if err = storeVocabulary(*dsn, c); err != nil {
			return report(err)
		}
		if *verbose {
			log.Printf("Stored vocabulary of %s in the sqlite database at %s", source, *dsn)
		}
	}

	if _, err = result.WriteTo(out); err != nil {
		return report(err)
	}

	return diagerr.ExitOk
}

func report(err error) int {
	log.Printf("%s", err)
	return diagerr.ExitCode(err)
}

func parseBool(envVar, value string) (bool, error) {
	if b, err := strconv.ParseBool(strings.TrimSpace(value)); err != nil {
		return false, diagerr.Wrap(diagerr.ErrInvalidArgument, fmt.Sprintf("the value of env var %s must be a boolean", envVar), value, err)
	} else {
		return b, nil
	}
}

// Answers the diagram read from the filesystem, or retrieved if source is an http uri
func loadDiagram(source string, environment env.Env) (diagram.Diagram, error) {
	if !retrieve.IsRemote(source) {
		return diagram.Load(source)
	}

	r, err := newRetriever(environment)
	if err != nil {
		return diagram.Diagram{}, err
	}

	return r.Get(strings.TrimSpace(source))
}

// Answers a Retriever implementation, used to get diagrams exported to a web server
func newRetriever(environment env.Env) (retrieve.Retriever, error) {
	timeout, err := strconv.Atoi(environment.HttpTimeoutMs)
	if err != nil || timeout < 1 {
		return nil, diagerr.New(diagerr.ErrInvalidArgument, fmt.Sprintf("the value of env var %s must be a positive integer", env.HTTP_TIMEOUT_MS), environment.HttpTimeoutMs)
	}

	httpClient := &http.Client{Timeout: time.Duration(timeout) * time.Millisecond}
	return retrieve.New(httpClient, environment.HttpUser, environment.HttpPassword, environment.UserAgent), nil
}

// Answers the persistence store used to keep converted vocabularies
func newStore(dsn string) (persistence.Store, error) {
	s, err := persistence.NewSqliteStore(dsn, persistence.SqliteParams{
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}, nil)

	if err != nil {
		return nil, err
	}

	return persistence.NewRetrySqliteStore(s, persistence.RetryPolicy{
		Interval: 500 * time.Millisecond,
		Backoff:  1.5,
		MaxTries: 3,
		Codes:    []sqlite3.ErrNo{sqlite3.ErrBusy, sqlite3.ErrLocked},
	}), nil
}

func storeVocabulary(dsn string, c *convert.Converter) error {
	v, err := persistence.FromConverter(c)
	if err != nil {
		return err
	}

	store, err := newStore(dsn)
	if err != nil {
		return fmt.Errorf("error obtaining sqlite store: %w", err)
	}

	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("error closing sqlite store: %v", err)
		}
	}()

	return store.StoreVocabulary(v)
}
