package encode

import (
	"bytes"
	"diag2rdfs/convert"
	"diag2rdfs/diagerr"
	"diag2rdfs/diagram"
	"encoding/json"
	"errors"
	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/assert"
	"sort"
	"strings"
	"testing"
)

func desmDocument(t *testing.T) Document {
	d, err := diagram.Load("../testdata/desm_model.csv")
	assert.Nil(t, err)

	c := convert.New(convert.Options{})
	assert.Nil(t, c.Convert(d))
	return FromConverter(c)
}

// keys answers the lexical form of each triple, sorted, so that triples can be compared regardless of how literal
// datatypes were serialized.
func keys(triples []rdf.Triple) []string {
	var result []string
	for _, t := range triples {
		result = append(result, t.Subj.String()+" "+t.Pred.String()+" "+t.Obj.String())
	}
	sort.Strings(result)
	return result
}

func TestParseFormat(t *testing.T) {
	for name, expected := range map[string]Format{
		"":         Turtle,
		"turtle":   Turtle,
		" TURTLE ": Turtle,
		"ntriples": NTriples,
		"jsonld":   JsonLd,
		"JsonLd":   JsonLd,
	} {
		actual, err := ParseFormat(name)
		assert.Nil(t, err)
		assert.Equal(t, expected, actual)
	}

	_, err := ParseFormat("rdfxml")
	assert.True(t, errors.Is(err, diagerr.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "jsonld, ntriples, turtle")
}

func TestInfo(t *testing.T) {
	info, ok := Info(Turtle)
	assert.True(t, ok)
	assert.Equal(t, "text/turtle", info.MimeType)
	assert.Equal(t, ".ttl", info.Extension)

	_, ok = Info("rdfxml")
	assert.False(t, ok)
}

func TestWriteTurtle(t *testing.T) {
	doc := desmDocument(t)
	out := bytes.Buffer{}

	assert.Nil(t, Write(&out, Turtle, doc))

	assert.True(t, strings.HasPrefix(out.String(), "# Title: DESM Model\n# Date: 2021-12-17\n"))
	assert.Contains(t, out.String(), "desm:")

	triples, err := rdf.NewTripleDecoder(strings.NewReader(out.String()), rdf.Turtle).DecodeAll()
	assert.Nil(t, err)
	assert.Equal(t, keys(doc.Schema.Triples()), keys(triples))
}

func TestWriteTurtleDeclaresEachPrefixOnce(t *testing.T) {
	doc := desmDocument(t)
	out := bytes.Buffer{}

	assert.Nil(t, Write(&out, Turtle, doc))

	prefixes := doc.bindings().Prefixes()
	assert.Equal(t, len(prefixes), strings.Count(out.String(), "@prefix "))
	for _, prefix := range prefixes {
		assert.Equal(t, 1, strings.Count(out.String(), "@prefix "+prefix+": "), prefix)
	}
	assert.True(t, strings.HasSuffix(out.String(), " .\n"))

	// one statement per subject, in the order the schema grouped them
	triples, err := rdf.NewTripleDecoder(strings.NewReader(out.String()), rdf.Turtle).DecodeAll()
	assert.Nil(t, err)
	var subjects []string
	for _, triple := range triples {
		if len(subjects) == 0 || subjects[len(subjects)-1] != triple.Subj.String() {
			subjects = append(subjects, triple.Subj.String())
		}
	}
	assert.Equal(t, doc.Schema.Subjects(), subjects)
	assert.Equal(t, len(subjects), strings.Count(out.String(), " .\n")-len(prefixes))
}

func TestWriteTurtleFullIriForUnusualLocalNames(t *testing.T) {
	d := diagram.Diagram{
		Meta: []diagram.MetaRow{
			{Line: 2, Id: "1", Kind: diagram.KindDocument, TextArea1: "Widgets"},
			{Line: 3, Id: "2", Kind: diagram.KindPage, Date: "2024-01-01", Defines: "desm", Prefixes: "desm: https://example.org/desm/"},
		},
		Classes: []diagram.ClassRow{
			{Line: 4, Id: "3", Identifiers: "desm:Widget", Label: "Widget"},
			{Line: 5, Id: "5", Identifiers: "desm:Gadget", Label: "Gadget"},
		},
		Links: []diagram.LinkRow{
			{Line: 6, Id: "4", Source: "3", Destination: "5", SourceArrow: "None", DestinationArrow: "Arrow", Identifiers: "desm:part~of"},
			{Line: 7, Id: "6", Source: "5", Destination: "3", SourceArrow: "None", DestinationArrow: "Arrow", Identifiers: "desm:a/b"},
		},
	}
	c := convert.New(convert.Options{})
	assert.Nil(t, c.Convert(d))
	doc := FromConverter(c)
	out := bytes.Buffer{}

	assert.Nil(t, Write(&out, Turtle, doc))

	assert.Contains(t, out.String(), "desm:Widget ")
	assert.Contains(t, out.String(), "<https://example.org/desm/part~of> a rdf:Property")
	assert.Contains(t, out.String(), "<https://example.org/desm/a/b> a rdf:Property")
	assert.NotContains(t, out.String(), "desm:part~of")
	assert.NotContains(t, out.String(), "ns0:")

	triples, err := rdf.NewTripleDecoder(strings.NewReader(out.String()), rdf.Turtle).DecodeAll()
	assert.Nil(t, err)
	assert.Equal(t, keys(doc.Schema.Triples()), keys(triples))
}

func TestWriteNTriples(t *testing.T) {
	doc := desmDocument(t)
	out := bytes.Buffer{}

	assert.Nil(t, Write(&out, NTriples, doc))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "# Title: DESM Model", lines[0])
	assert.Equal(t, "# Date: 2021-12-17", lines[1])

	triples, err := rdf.NewTripleDecoder(strings.NewReader(out.String()), rdf.NTriples).DecodeAll()
	assert.Nil(t, err)
	assert.Equal(t, keys(doc.Schema.Triples()), keys(triples))

	// subjects are not interleaved
	var subjects []string
	for _, triple := range triples {
		if len(subjects) == 0 || subjects[len(subjects)-1] != triple.Subj.String() {
			subjects = append(subjects, triple.Subj.String())
		}
	}
	assert.Equal(t, doc.Schema.Subjects(), subjects)
}

func TestWriteJsonLd(t *testing.T) {
	doc := desmDocument(t)
	out := bytes.Buffer{}

	assert.Nil(t, Write(&out, JsonLd, doc))

	var compacted map[string]interface{}
	assert.Nil(t, json.Unmarshal(out.Bytes(), &compacted))
	context, ok := compacted["@context"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/t3-innovation-network/desm/tree/main/schemas/desmSchema/", context["desm"])
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#", context["rdfs"])

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	nquads, err := proc.ToRDF(compacted, opts)
	assert.Nil(t, err)

	triples, err := rdf.NewTripleDecoder(strings.NewReader(nquads.(string)), rdf.NTriples).DecodeAll()
	assert.Nil(t, err)
	assert.Equal(t, keys(doc.Schema.Triples()), keys(triples))
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("rdfxml"), desmDocument(t))
	assert.True(t, errors.Is(err, diagerr.ErrInvalidArgument))
}

func TestWriteEmptySchema(t *testing.T) {
	out := bytes.Buffer{}
	assert.Nil(t, Write(&out, NTriples, FromConverter(convert.New(convert.Options{}))))
	assert.Equal(t, "# Title: \n# Date: \n\n", out.String())
}
