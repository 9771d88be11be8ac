package namespace

import (
	"diag2rdfs/diagerr"
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_ResolveBaseUri(t *testing.T) {
	for _, uri := range []string{"http://schema.org/", "https://example.org/desm/", "http://www.w3.org/2004/02/skos/core#"} {
		ns, err := ResolveBaseUri(uri)
		assert.Nil(t, err)
		assert.Equal(t, uri, ns.String())
	}

	// surrounding whitespace is not part of the namespace
	ns, err := ResolveBaseUri("  http://schema.org/\r")
	assert.Nil(t, err)
	assert.Equal(t, "http://schema.org/", ns.String())
}

func Test_ResolveBaseUriMalformed(t *testing.T) {
	for _, uri := range []string{"schema.org", "schema.org/", "ftp://schema.org/", "https://schema.org", "http://schema.org/name", "", "http://example.org/a b/"} {
		_, err := ResolveBaseUri(uri)
		assert.True(t, errors.Is(err, diagerr.ErrMalformedUri), "expected malformed uri error for %q, got %v", uri, err)
	}
}

func Test_Add(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Len())

	ns, _ := ResolveBaseUri("http://schema.org/")
	assert.Nil(t, r.Add("sdo:", ns))
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Has("sdo"))
	assert.False(t, r.Has("sdo:"))

	found, err := r.Lookup("sdo")
	assert.Nil(t, err)
	assert.Equal(t, ns, found)
}

func Test_AddInvalid(t *testing.T) {
	r := NewRegistry()
	ns, _ := ResolveBaseUri("http://schema.org/")

	assert.True(t, errors.Is(r.Add("", ns), diagerr.ErrInvalidArgument))
	assert.True(t, errors.Is(r.Add(":", ns), diagerr.ErrInvalidArgument))
	assert.True(t, errors.Is(r.Add("a:b", ns), diagerr.ErrInvalidArgument))
	assert.True(t, errors.Is(r.Add("sdo", Namespace{}), diagerr.ErrInvalidArgument))
	assert.Equal(t, 0, r.Len())
}

func Test_LookupUnknown(t *testing.T) {
	_, err := NewRegistry().Lookup("desm")
	assert.True(t, errors.Is(err, diagerr.ErrUnknownPrefix))
}

func Test_Term(t *testing.T) {
	ns, _ := ResolveBaseUri("https://example.org/desm/")
	iri, err := ns.Term("Widget")
	assert.Nil(t, err)
	assert.Equal(t, "https://example.org/desm/Widget", iri.String())
}

func Test_PrefixesAndBindings(t *testing.T) {
	r := NewRegistry()
	desm, _ := ResolveBaseUri("https://example.org/desm/")
	dct, _ := ResolveBaseUri("http://purl.org/dc/terms/")
	_ = r.Add("dct", dct)
	_ = r.Add("desm", desm)

	assert.Equal(t, []string{"dct", "desm"}, r.Prefixes())
	assert.Equal(t, map[string]string{
		"https://example.org/desm/": "desm",
		"http://purl.org/dc/terms/": "dct",
	}, r.Bindings())
}

func Test_Merge(t *testing.T) {
	diagram := NewRegistry()
	desm, _ := ResolveBaseUri("https://example.org/desm/")
	dc, _ := ResolveBaseUri("http://purl.org/dc/terms/")
	_ = diagram.Add("desm", desm)
	_ = diagram.Add("dcterms", dc)

	merged := Merge(WellKnown(), diagram)

	assert.True(t, merged.Has("desm"))
	assert.True(t, merged.Has("rdfs"))
	// the diagram's prefix wins for a namespace bound twice
	assert.True(t, merged.Has("dcterms"))
	assert.False(t, merged.Has("dct"))
	assert.Equal(t, "dcterms", merged.Bindings()["http://purl.org/dc/terms/"])

	// inputs are untouched
	assert.Equal(t, 2, diagram.Len())
	assert.True(t, WellKnown().Has("dct"))
}
