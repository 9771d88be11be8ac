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

// Maps the prefixes declared on a diagram to the namespace IRIs they stand for.
package namespace

import (
	"diag2rdfs/diagerr"
	"github.com/knakk/rdf"
	"sort"
	"strings"
)

// Namespace is a base IRI that has passed ResolveBaseUri.  The zero value is not a valid namespace.
type Namespace struct {
	iri rdf.IRI
}

func (ns Namespace) Iri() rdf.IRI {
	return ns.iri
}

func (ns Namespace) String() string {
	return ns.iri.String()
}

func (ns Namespace) IsZero() bool {
	return ns.iri.String() == ""
}

// Term answers the IRI of the named term within the namespace.
func (ns Namespace) Term(name string) (rdf.IRI, error) {
	iri, err := rdf.NewIRI(ns.iri.String() + name)
	if err != nil {
		return rdf.IRI{}, diagerr.Wrap(diagerr.ErrMalformedUri, "invalid term in namespace "+ns.String(), name, err)
	}
	return iri, nil
}

// ResolveBaseUri validates uri as a namespace: it must start with "http" and end with "/" or "#".
func ResolveBaseUri(uri string) (Namespace, error) {
	uri = strings.TrimSpace(uri)

	if !strings.HasPrefix(uri, "http") {
		return Namespace{}, diagerr.New(diagerr.ErrMalformedUri, "namespace uri should start with http", uri)
	}

	if !strings.HasSuffix(uri, "/") && !strings.HasSuffix(uri, "#") {
		return Namespace{}, diagerr.New(diagerr.ErrMalformedUri, "namespace uri should end with / or #", uri)
	}

	iri, err := rdf.NewIRI(uri)
	if err != nil {
		return Namespace{}, diagerr.Wrap(diagerr.ErrMalformedUri, "namespace uri is not a valid IRI", uri, err)
	}

	return Namespace{iri}, nil
}

// Registry of prefix to Namespace mappings.  Prefixes are stored without a trailing colon.
type Registry struct {
	namespaces map[string]Namespace
}

func NewRegistry() *Registry {
	return &Registry{namespaces: map[string]Namespace{}}
}

// Add registers ns under prefix, replacing any earlier registration.  A single trailing colon on the prefix is
// dropped.
func (r *Registry) Add(prefix string, ns Namespace) error {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")

	if prefix == "" {
		return diagerr.New(diagerr.ErrInvalidArgument, "namespace prefix must not be empty", prefix)
	}

	if strings.ContainsAny(prefix, ": \t") {
		return diagerr.New(diagerr.ErrInvalidArgument, "namespace prefix must not contain colons or whitespace", prefix)
	}

	if ns.IsZero() {
		return diagerr.New(diagerr.ErrInvalidArgument, "namespace for prefix "+prefix+" has not been resolved", "")
	}

	r.namespaces[prefix] = ns
	return nil
}

func (r *Registry) Lookup(prefix string) (Namespace, error) {
	if ns, exists := r.namespaces[prefix]; exists {
		return ns, nil
	}
	return Namespace{}, diagerr.New(diagerr.ErrUnknownPrefix, "no namespace for prefix", prefix)
}

func (r *Registry) Has(prefix string) bool {
	_, exists := r.namespaces[prefix]
	return exists
}

func (r *Registry) Len() int {
	return len(r.namespaces)
}

// Prefixes answers the registered prefixes in lexical order.
func (r *Registry) Prefixes() []string {
	prefixes := make([]string, 0, len(r.namespaces))
	for prefix := range r.namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	return prefixes
}

// Bindings answers namespace IRI -> prefix.
func (r *Registry) Bindings() map[string]string {
	bindings := map[string]string{}
	for _, prefix := range r.Prefixes() {
		bindings[r.namespaces[prefix].String()] = prefix
	}
	return bindings
}
