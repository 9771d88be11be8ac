package model

import (
	"github.com/knakk/rdf"
)

// Schema is the RDF Schema vocabulary built from a diagram: a set of triples, kept in the order they were first
// added.  Triples are only ever added.
type Schema struct {
	triples []rdf.Triple
	seen    map[string]bool
}

func NewSchema() *Schema {
	return &Schema{seen: map[string]bool{}}
}

// Add asserts the triple (subj, pred, obj).  Asserting a triple already in the schema has no effect.
func (s *Schema) Add(subj rdf.Subject, pred rdf.Predicate, obj rdf.Object) {
	triple := rdf.Triple{Subj: subj, Pred: pred, Obj: obj}
	key := triple.Serialize(rdf.NTriples)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.triples = append(s.triples, triple)
}

func (s *Schema) Len() int {
	return len(s.triples)
}

// Triples answers a copy of the schema's triples in insertion order.
func (s *Schema) Triples() []rdf.Triple {
	triples := make([]rdf.Triple, len(s.triples))
	copy(triples, s.triples)
	return triples
}

func (s *Schema) Contains(subj rdf.Subject, pred rdf.Predicate, obj rdf.Object) bool {
	return s.seen[rdf.Triple{Subj: subj, Pred: pred, Obj: obj}.Serialize(rdf.NTriples)]
}

// Subjects answers the distinct subjects in the order they first appear.
func (s *Schema) Subjects() []string {
	subjects := []string{}
	seen := map[string]bool{}
	for _, triple := range s.triples {
		if subj := triple.Subj.String(); !seen[subj] {
			seen[subj] = true
			subjects = append(subjects, subj)
		}
	}
	return subjects
}

// Objects answers the string form of every object asserted for subj and pred.
func (s *Schema) Objects(subj, pred string) []string {
	return s.filterObj(func(triple rdf.Triple) bool {
		return triple.Subj.String() == subj && triple.Pred.String() == pred
	})
}

// Types answers the rdf:type objects of subj.
func (s *Schema) Types(subj string) []string {
	return s.Objects(subj, RdfTypeUri)
}

// Classes answers the subjects typed rdfs:Class.
func (s *Schema) Classes() []string {
	return s.filterSubj(func(triple rdf.Triple) bool {
		return triple.Pred.String() == RdfTypeUri && triple.Obj.String() == RdfsClassUri
	})
}

// Properties answers the subjects typed rdf:Property.
func (s *Schema) Properties() []string {
	return s.filterSubj(func(triple rdf.Triple) bool {
		return triple.Pred.String() == RdfTypeUri && triple.Obj.String() == RdfPropertyUri
	})
}

// Predicates answers the distinct predicates asserted for subj.
func (s *Schema) Predicates(subj string) []string {
	predicates := []string{}
	seen := map[string]bool{}
	for _, triple := range s.triples {
		if triple.Subj.String() != subj {
			continue
		}
		if pred := triple.Pred.String(); !seen[pred] {
			seen[pred] = true
			predicates = append(predicates, pred)
		}
	}
	return predicates
}

// Grouped answers the triples ordered by subject, subjects in order of first appearance, each subject's triples in
// insertion order.
func (s *Schema) Grouped() []rdf.Triple {
	bySubj := map[string][]rdf.Triple{}
	for _, triple := range s.triples {
		subj := triple.Subj.String()
		bySubj[subj] = append(bySubj[subj], triple)
	}

	grouped := make([]rdf.Triple, 0, len(s.triples))
	for _, subj := range s.Subjects() {
		grouped = append(grouped, bySubj[subj]...)
	}
	return grouped
}

func (s *Schema) filterObj(tripleFilter func(triple rdf.Triple) bool) []string {
	objects := []string{}
	for _, triple := range s.triples {
		if tripleFilter(triple) {
			objects = append(objects, triple.Obj.String())
		}
	}
	return objects
}

func (s *Schema) filterSubj(tripleFilter func(triple rdf.Triple) bool) []string {
	subjects := []string{}
	for _, triple := range s.triples {
		if tripleFilter(triple) {
			subjects = append(subjects, triple.Subj.String())
		}
	}
	return subjects
}
