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

// Responsible for creating and executing HTTP requests for diagrams exported as CSV
package retrieve

import (
	"diag2rdfs/diagerr"
	"diag2rdfs/diagram"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// HTTP media type used to request a CSV representation of a diagram
	CsvMediaType = "text/csv"
)

// Retrieve the diagram identified by the URI.
type Retriever interface {
	Get(uri string) (diagram.Diagram, error)
}

type retriever struct {
	httpClient *http.Client
	username   string
	password   string
	useragent  string
}

// IsRemote answers true when source should be retrieved over HTTP rather than read from the filesystem.
func IsRemote(source string) bool {
	source = strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Retrieve the diagram identified by the URI.  Failing to reach the URI, or a response outside the 2xx range, is an
// invalid argument.
func (r retriever) Get(uri string) (diagram.Diagram, error) {
	var req *http.Request
	var res *http.Response
	var err error

	if req, err = http.NewRequest("GET", uri, nil); err != nil {
		return diagram.Diagram{}, diagerr.Wrap(diagerr.ErrInvalidArgument, "unable to create request", uri, err)
	} else {
		if len(r.username) > 0 {
			req.SetBasicAuth(r.username, r.password)
		}
		if len(r.useragent) > 0 {
			req.Header.Add("User-Agent", r.useragent)
		}
		req.Header.Add("Accept", CsvMediaType)
	}

	if res, err = r.httpClient.Do(req); err != nil {
		return diagram.Diagram{}, diagerr.Wrap(diagerr.ErrInvalidArgument, "error executing GET", uri, err)
	}

	defer func() { res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return diagram.Diagram{}, diagerr.New(diagerr.ErrInvalidArgument,
			fmt.Sprintf("error retrieving diagram (status code %d): %s", res.StatusCode, strings.TrimSpace(string(buf))), uri)
	}

	return diagram.Read(res.Body)
}

// Creates a new Retriever instance with the supplied client.  The remaining parameters may be empty strings.
// If supplied, the username and password will be added to each request in an Authorization header.  If the useragent
// string is supplied, each request will use that value in the User-Agent header.
func New(httpClient *http.Client, username, password, useragent string) Retriever {
	r := retriever{
		httpClient: httpClient,
		username:   username,
		password:   password,
		useragent:  useragent,
	}

	return r
}
