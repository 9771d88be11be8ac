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

// Serializes a converted vocabulary as Turtle, N-Triples or JSON-LD.
package encode

import (
	"bytes"
	"diag2rdfs/convert"
	"diag2rdfs/model"
	"diag2rdfs/namespace"
	"encoding/json"
	"fmt"
	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
	"io"
	"log"
)

// Document is everything written for one vocabulary.
type Document struct {
	Metadata   convert.Metadata
	Namespaces *namespace.Registry
	Schema     *model.Schema
}

func FromConverter(c *convert.Converter) Document {
	return Document{Metadata: c.Metadata, Namespaces: c.Namespaces, Schema: c.Schema}
}

// bindings answers the prefixes known to the output: the well-known ones, overridden by those the diagram declares.
func (d Document) bindings() *namespace.Registry {
	if d.Namespaces == nil {
		return namespace.WellKnown()
	}
	return namespace.Merge(namespace.WellKnown(), d.Namespaces)
}

// Write serializes doc to w in the requested format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case Turtle, "":
		return writeTriples(w, rdf.Turtle, doc)
	case NTriples:
		return writeTriples(w, rdf.NTriples, doc)
	case JsonLd:
		log.Printf("Title: %s", doc.Metadata.Title)
		log.Printf("Date: %s", doc.Metadata.Date)
		return writeJsonLd(w, doc)
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

func writeHeader(w io.Writer, meta convert.Metadata) error {
	_, err := fmt.Fprintf(w, "# Title: %s\n# Date: %s\n\n", meta.Title, meta.Date)
	return err
}

// writePrefixes declares the bindings, sorted by prefix.
func writePrefixes(w io.Writer, bindings *namespace.Registry) error {
	for _, prefix := range bindings.Prefixes() {
		ns, _ := bindings.Lookup(prefix)
		if _, err := fmt.Fprintf(w, "@prefix %s: <%s> .\n", prefix, ns); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeTriples(w io.Writer, rdfFormat rdf.Format, doc Document) error {
	if err := writeHeader(w, doc.Metadata); err != nil {
		return err
	}

	if rdfFormat == rdf.Turtle {
		bindings := doc.bindings()
		if err := writePrefixes(w, bindings); err != nil {
			return err
		}
		return writeTurtle(w, bindings, doc.Schema.Grouped())
	}

	enc := rdf.NewTripleEncoder(w, rdfFormat)
	if err := enc.EncodeAll(doc.Schema.Grouped()); err != nil {
		return err
	}

	return enc.Close()
}

func writeJsonLd(w io.Writer, doc Document) error {
	nTriples := bytes.Buffer{}
	enc := rdf.NewTripleEncoder(&nTriples, rdf.NTriples)
	if err := enc.EncodeAll(doc.Schema.Grouped()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"

	expanded, err := proc.FromRDF(nTriples.String(), opts)
	if err != nil {
		return fmt.Errorf("encode: unable to convert triples to JSON-LD: %w", err)
	}

	compacted, err := proc.Compact(expanded, context(doc.bindings()), ld.NewJsonLdOptions(""))
	if err != nil {
		return fmt.Errorf("encode: unable to compact JSON-LD: %w", err)
	}

	result, err := json.MarshalIndent(compacted, "", "  ")
	if err != nil {
		return err
	}

	if _, err = w.Write(result); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

func context(registry *namespace.Registry) map[string]interface{} {
	terms := map[string]interface{}{}
	for iri, prefix := range registry.Bindings() {
		terms[prefix] = iri
	}
	return map[string]interface{}{"@context": terms}
}
