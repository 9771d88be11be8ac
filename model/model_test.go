package model

import (
	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"testing"
)

func iri(t *testing.T, s string) rdf.IRI {
	i, err := rdf.NewIRI(s)
	assert.Nil(t, err)
	return i
}

func Test_SchemaAddIgnoresDuplicates(t *testing.T) {
	s := NewSchema()
	widget := iri(t, "https://example.org/desm/Widget")

	s.Add(widget, RdfType, RdfsClass)
	s.Add(widget, RdfType, RdfsClass)

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(widget, RdfType, RdfsClass))
	assert.False(t, s.Contains(widget, RdfType, RdfProperty))
}

func Test_SchemaLiterals(t *testing.T) {
	s := NewSchema()
	widget := iri(t, "https://example.org/desm/Widget")
	label, _ := rdf.NewLiteral("Widget")
	other, _ := rdf.NewLiteral("Gadget")

	s.Add(widget, RdfsLabel, label)
	s.Add(widget, RdfsLabel, other)

	assert.Equal(t, []string{"Widget", "Gadget"}, s.Objects(widget.String(), RdfsLabelUri))
	assert.True(t, s.Contains(widget, RdfsLabel, label))
}

func Test_SchemaFilters(t *testing.T) {
	s := NewSchema()
	widget := iri(t, "https://example.org/desm/Widget")
	partOf := iri(t, "https://example.org/desm/partOf")

	s.Add(widget, RdfType, RdfsClass)
	s.Add(partOf, RdfType, RdfProperty)
	s.Add(partOf, RdfsDomain, widget)
	s.Add(widget, RdfsIsDefinedBy, iri(t, "https://example.org/desm/"))

	assert.Equal(t, []string{widget.String()}, s.Classes())
	assert.Equal(t, []string{partOf.String()}, s.Properties())
	assert.Equal(t, []string{RdfsClassUri}, s.Types(widget.String()))
	assert.Equal(t, []string{widget.String(), partOf.String()}, s.Subjects())
	assert.Equal(t, []string{RdfTypeUri, RdfsIsDefinedByUri}, s.Predicates(widget.String()))
}

func Test_SchemaGrouped(t *testing.T) {
	s := NewSchema()
	a := iri(t, "https://example.org/desm/A")
	b := iri(t, "https://example.org/desm/B")

	s.Add(a, RdfType, RdfsClass)
	s.Add(b, RdfType, RdfsClass)
	s.Add(a, RdfsSubClassOf, b)

	grouped := s.Grouped()
	assert.Equal(t, 3, len(grouped))
	assert.Equal(t, a.String(), grouped[0].Subj.String())
	assert.Equal(t, a.String(), grouped[1].Subj.String())
	assert.Equal(t, RdfsSubClassOfUri, grouped[1].Pred.String())
	assert.Equal(t, b.String(), grouped[2].Subj.String())

	// insertion order is untouched
	assert.Equal(t, b.String(), s.Triples()[1].Subj.String())
}
