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

// Resolves the identifiers typed into diagram text fields, either absolute http(s) URIs or compact identifiers of
// the form prefix:name, to IRIs.
package curie

import (
	"diag2rdfs/diagerr"
	"diag2rdfs/namespace"
	"github.com/knakk/rdf"
	"strings"
)

// Prefix of the namespace used for identifiers that carry no prefix at all.
const BasePrefix = "base"

// Term is a compact identifier resolved against a namespace.Registry.
type Term struct {
	Iri       rdf.IRI
	Prefix    string
	Namespace rdf.IRI
}

// IsLocal answers true when the term belongs to the vocabulary identified by definesPrefix.
func (t Term) IsLocal(definesPrefix string) bool {
	return definesPrefix != "" && t.Prefix == definesPrefix
}

// ToIri answers the IRI for s.  Strings starting with "http" are taken to be absolute URIs and must have "://" after
// the scheme; anything else is expanded as a compact identifier using ns.  A nil ns means only absolute URIs can be
// resolved.
func ToIri(s string, ns *namespace.Registry) (rdf.IRI, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "http") {
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "//") {
			return rdf.IRI{}, diagerr.New(diagerr.ErrMalformedUri, "string looks like an invalid http uri", s)
		}
		iri, err := rdf.NewIRI(s)
		if err != nil {
			return rdf.IRI{}, diagerr.Wrap(diagerr.ErrMalformedUri, "string is not a valid IRI", s, err)
		}
		return iri, nil
	}

	if ns == nil {
		return rdf.IRI{}, diagerr.New(diagerr.ErrAmbiguousReference, "string must be either a compact identifier or an http(s) uri", s)
	}

	return Expand(s, ns)
}

// Expand answers the IRI of a compact identifier.  An identifier without a colon is resolved against the "base"
// namespace, if one is registered.
func Expand(compact string, ns *namespace.Registry) (rdf.IRI, error) {
	if strings.Contains(compact, ":") {
		prefix, name, err := splitPrefix(compact)
		if err != nil {
			return rdf.IRI{}, err
		}
		return expand(prefix, name, ns)
	}

	if ns != nil && ns.Has(BasePrefix) {
		return expand(BasePrefix, compact, ns)
	}

	return rdf.IRI{}, diagerr.New(diagerr.ErrAmbiguousReference, "need a prefixed identifier or a base namespace", compact)
}

// Split resolves a compact identifier and answers the IRI along with the prefix and namespace it was resolved
// through.  The identifier must have exactly one colon and a registered prefix.
func Split(compact string, ns *namespace.Registry) (Term, error) {
	compact = strings.TrimSpace(compact)

	prefix, name, err := splitPrefix(compact)
	if err != nil {
		return Term{}, err
	}

	if ns == nil || !ns.Has(prefix) {
		return Term{}, diagerr.New(diagerr.ErrUnknownPrefix, "no namespace for prefix of compact identifier", compact)
	}

	iri, err := expand(prefix, name, ns)
	if err != nil {
		return Term{}, err
	}

	base, _ := ns.Lookup(prefix)
	return Term{Iri: iri, Prefix: prefix, Namespace: base.Iri()}, nil
}

func splitPrefix(compact string) (prefix, name string, err error) {
	parts := strings.Split(compact, ":")
	if len(parts) != 2 {
		return "", "", diagerr.New(diagerr.ErrMalformedIdentifier, "compact identifier should have exactly one colon", compact)
	}
	return parts[0], parts[1], nil
}

func expand(prefix, name string, ns *namespace.Registry) (rdf.IRI, error) {
	if ns == nil {
		return rdf.IRI{}, diagerr.New(diagerr.ErrUnknownPrefix, "no namespace for prefix", prefix)
	}

	base, err := ns.Lookup(prefix)
	if err != nil {
		return rdf.IRI{}, err
	}

	return base.Term(name)
}
