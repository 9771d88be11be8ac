package model

import (
	"github.com/knakk/rdf"
)

const (
	RdfUri  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RdfsUri = "http://www.w3.org/2000/01/rdf-schema#"
	OwlUri  = "http://www.w3.org/2002/07/owl#"
	SkosUri = "http://www.w3.org/2004/02/skos/core#"
	SdoUri  = "http://schema.org/"

	RdfTypeUri     = RdfUri + "type"
	RdfPropertyUri = RdfUri + "Property"

	RdfsClassUri       = RdfsUri + "Class"
	RdfsLiteralUri     = RdfsUri + "Literal"
	RdfsLabelUri       = RdfsUri + "label"
	RdfsCommentUri     = RdfsUri + "comment"
	RdfsSubClassOfUri  = RdfsUri + "subClassOf"
	RdfsDomainUri      = RdfsUri + "domain"
	RdfsRangeUri       = RdfsUri + "range"
	RdfsIsDefinedByUri = RdfsUri + "isDefinedBy"

	OwlEquivalentClassUri = OwlUri + "equivalentClass"

	SkosScopeNoteUri = SkosUri + "scopeNote"

	// soft, non-exclusive domain and range, for properties owned by another vocabulary
	SdoDomainIncludesUri = SdoUri + "domainIncludes"
	SdoRangeIncludesUri  = SdoUri + "rangeIncludes"
)

var (
	RdfType     = mustIri(RdfTypeUri)
	RdfProperty = mustIri(RdfPropertyUri)

	RdfsClass       = mustIri(RdfsClassUri)
	RdfsLiteral     = mustIri(RdfsLiteralUri)
	RdfsLabel       = mustIri(RdfsLabelUri)
	RdfsComment     = mustIri(RdfsCommentUri)
	RdfsSubClassOf  = mustIri(RdfsSubClassOfUri)
	RdfsDomain      = mustIri(RdfsDomainUri)
	RdfsRange       = mustIri(RdfsRangeUri)
	RdfsIsDefinedBy = mustIri(RdfsIsDefinedByUri)

	OwlEquivalentClass = mustIri(OwlEquivalentClassUri)

	SkosScopeNote = mustIri(SkosScopeNoteUri)

	SdoDomainIncludes = mustIri(SdoDomainIncludesUri)
	SdoRangeIncludes  = mustIri(SdoRangeIncludesUri)
)

func mustIri(uri string) rdf.IRI {
	iri, err := rdf.NewIRI(uri)
	if err != nil {
		panic(err)
	}
	return iri
}
