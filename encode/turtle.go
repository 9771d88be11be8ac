package encode

import (
	"diag2rdfs/namespace"
	"fmt"
	"github.com/knakk/rdf"
	"io"
	"regexp"
	"sort"
	"strings"
)

const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

// local names that can follow a prefix without escaping
var plainLocalName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)

type binding struct {
	ns     string
	prefix string
}

// abbreviator renders terms as prefixed names where a declared namespace allows it.
type abbreviator struct {
	// longest namespace first
	bindings []binding
}

func newAbbreviator(registry *namespace.Registry) abbreviator {
	a := abbreviator{}
	for ns, prefix := range registry.Bindings() {
		a.bindings = append(a.bindings, binding{ns, prefix})
	}
	sort.Slice(a.bindings, func(i, j int) bool {
		if len(a.bindings[i].ns) != len(a.bindings[j].ns) {
			return len(a.bindings[i].ns) > len(a.bindings[j].ns)
		}
		return a.bindings[i].prefix < a.bindings[j].prefix
	})
	return a
}

func (a abbreviator) term(t rdf.Term) string {
	iri, ok := t.(rdf.IRI)
	if !ok {
		return t.Serialize(rdf.Turtle)
	}

	for _, b := range a.bindings {
		if !strings.HasPrefix(iri.String(), b.ns) {
			continue
		}
		if local := strings.TrimPrefix(iri.String(), b.ns); plainLocalName.MatchString(local) {
			return b.prefix + ":" + local
		}
	}
	return iri.Serialize(rdf.Turtle)
}

func (a abbreviator) predicate(t rdf.Term) string {
	if t.String() == rdfType {
		return "a"
	}
	return a.term(t)
}

// writeTurtle writes one statement per subject, predicates in the order given.  Prefixes are expected to have been
// declared already.
func writeTurtle(w io.Writer, registry *namespace.Registry, triples []rdf.Triple) error {
	a := newAbbreviator(registry)

	for i, t := range triples {
		var err error
		switch {
		case i == 0:
			_, err = fmt.Fprintf(w, "%s %s %s", a.term(t.Subj), a.predicate(t.Pred), a.term(t.Obj))
		case rdf.TermsEqual(t.Subj, triples[i-1].Subj):
			_, err = fmt.Fprintf(w, " ;\n\t%s %s", a.predicate(t.Pred), a.term(t.Obj))
		default:
			_, err = fmt.Fprintf(w, " .\n\n%s %s %s", a.term(t.Subj), a.predicate(t.Pred), a.term(t.Obj))
		}
		if err != nil {
			return err
		}
	}

	if len(triples) > 0 {
		_, err := fmt.Fprint(w, " .\n")
		return err
	}
	return nil
}
