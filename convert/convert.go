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

// Builds an RDF Schema vocabulary from a classified diagram.
//
// Conversion runs in phases, each relying on the one before: document metadata, prefix declarations, classes (with
// the literal-valued properties drawn inside them), then the properties drawn as links between classes.  Terms whose
// prefix is the one the diagram "defines" are local and fully described; terms from other vocabularies only get
// isDefinedBy and the soft schema.org domainIncludes / rangeIncludes, leaving their owners' constraints alone.
package convert

import (
	"diag2rdfs/curie"
	"diag2rdfs/diagerr"
	"diag2rdfs/diagram"
	"diag2rdfs/model"
	"diag2rdfs/namespace"
	"fmt"
	"github.com/knakk/rdf"
	"strings"
)

// Metadata about the vocabulary, taken from the Document and Page rows.
type Metadata struct {
	Title string
	Date  string
	// prefix of the vocabulary the diagram defines
	Defines string
}

type Options struct {
	// Assert subclass-of and scope note values as rdfs:label literals, and ignore equivalent classes, for consumers
	// of vocabularies generated before these got their own predicates.  When false, each value is asserted with its
	// own predicate.
	LegacyLabels bool
}

type Converter struct {
	Metadata     Metadata
	Namespaces   *namespace.Registry
	Schema       *model.Schema
	Options      Options
	EventHandler EventHandler
}

func New(opts Options) *Converter {
	return &Converter{
		Metadata:     Metadata{},
		Namespaces:   namespace.NewRegistry(),
		Schema:       model.NewSchema(),
		Options:      opts,
		EventHandler: NoopEventHandler,
	}
}

// Convert builds the vocabulary described by d.  Any state from an earlier conversion is discarded first, so
// converting the same diagram twice produces the same schema.  The first error aborts the conversion.
func (c *Converter) Convert(d diagram.Diagram) error {
	c.Metadata = Metadata{}
	c.Namespaces = namespace.NewRegistry()
	c.Schema = model.NewSchema()

	c.ConvertMetadata(d)

	if err := c.ConvertNamespaces(d); err != nil {
		return err
	}

	if err := c.ConvertClasses(d); err != nil {
		return err
	}

	if err := c.ConvertLinkProperties(d); err != nil {
		return err
	}

	for _, class := range d.Unlinked() {
		c.emit(class.Identifiers, EventUnlinkedClass, fmt.Sprintf("class %q (id %s, line %d) is not linked to any other class", class.Identifiers, class.Id, class.Line))
	}

	return nil
}

// ConvertMetadata takes the title from the first Document row, and the date and defining prefix from the first Page
// row providing them.
func (c *Converter) ConvertMetadata(d diagram.Diagram) {
	for _, row := range d.Meta {
		switch row.Kind {
		case diagram.KindDocument:
			if c.Metadata.Title == "" {
				c.Metadata.Title = strings.TrimSpace(row.TextArea1)
			}
		case diagram.KindPage:
			if c.Metadata.Date == "" {
				c.Metadata.Date = row.Date
			}
			if c.Metadata.Defines == "" {
				c.Metadata.Defines = row.Defines
			}
		}
	}

	c.emit(c.Metadata.Defines, EventMetadata, fmt.Sprintf("title %q, date %q, defines %q", c.Metadata.Title, c.Metadata.Date, c.Metadata.Defines))
}

// ConvertNamespaces registers the "prefix: uri" declarations listed, one per line, on Page rows.
func (c *Converter) ConvertNamespaces(d diagram.Diagram) error {
	for _, row := range d.Meta {
		if row.Kind != diagram.KindPage {
			continue
		}

		for _, declaration := range diagram.Lines(row.Prefixes) {
			prefix, uri, err := parsePrefixDeclaration(declaration)
			if err != nil {
				return diagerr.At(err, row.Line, diagram.ColPrefixes)
			}

			ns, err := namespace.ResolveBaseUri(uri)
			if err != nil {
				return diagerr.At(err, row.Line, diagram.ColPrefixes)
			}

			if err = c.Namespaces.Add(prefix, ns); err != nil {
				return diagerr.At(err, row.Line, diagram.ColPrefixes)
			}

			c.emit(ns.String(), EventNamespace, fmt.Sprintf("%s: <%s>", prefix, ns))
		}
	}

	return nil
}

func parsePrefixDeclaration(declaration string) (prefix, uri string, err error) {
	i := strings.Index(declaration, ":")
	if i < 0 || i+1 >= len(declaration) || (declaration[i+1] != ' ' && declaration[i+1] != '\t') {
		return "", "", diagerr.New(diagerr.ErrInvalidArgument, "prefix declaration should have the form 'prefix: uri'", declaration)
	}
	return strings.TrimSpace(declaration[:i]), strings.TrimSpace(declaration[i+1:]), nil
}

// ConvertClasses declares every identifier of every class row as an rdfs:Class.  Identifiers listed on the same row
// are aliases and receive the same assertions.
func (c *Converter) ConvertClasses(d diagram.Diagram) error {
	for _, row := range d.Classes {
		identifiers := diagram.Lines(row.Identifiers)
		if len(identifiers) == 0 {
			return diagerr.At(diagerr.New(diagerr.ErrMalformedIdentifier, "class has no identifier", row.Id), row.Line, diagram.ColTextArea1)
		}

		for _, identifier := range identifiers {
			term, err := curie.Split(identifier, c.Namespaces)
			if err != nil {
				return diagerr.At(err, row.Line, diagram.ColTextArea1)
			}

			c.Schema.Add(term.Iri, model.RdfType, model.RdfsClass)
			c.Schema.Add(term.Iri, model.RdfsIsDefinedBy, term.Namespace)

			if term.IsLocal(c.Metadata.Defines) {
				if err = c.describeClass(term.Iri, row); err != nil {
					return err
				}
			}

			c.emit(term.Iri.String(), EventClass, fmt.Sprintf("%s (local: %t)", identifier, term.IsLocal(c.Metadata.Defines)))

			for _, definition := range diagram.Lines(row.Properties) {
				if _, err = c.ConvertClassProperty(definition, term.Iri); err != nil {
					return diagerr.At(err, row.Line, diagram.ColTextArea2)
				}
			}
		}
	}

	return nil
}

func (c *Converter) describeClass(class rdf.IRI, row diagram.ClassRow) error {
	if row.Label != "" {
		c.Schema.Add(class, model.RdfsLabel, literal(row.Label))
	}

	if row.Comment != "" {
		c.Schema.Add(class, model.RdfsComment, literal(row.Comment))
	}

	if c.Options.LegacyLabels {
		if row.SubClassOf != "" {
			c.Schema.Add(class, model.RdfsLabel, literal(row.SubClassOf))
		}
		if row.ScopeNote != "" {
			c.Schema.Add(class, model.RdfsLabel, literal(row.ScopeNote))
		}
		return nil
	}

	for _, super := range diagram.Lines(row.SubClassOf) {
		superIri, err := curie.ToIri(super, c.Namespaces)
		if err != nil {
			return diagerr.At(err, row.Line, diagram.ColSubClassOf)
		}
		c.Schema.Add(class, model.RdfsSubClassOf, superIri)
	}

	if row.ScopeNote != "" {
		c.Schema.Add(class, model.SkosScopeNote, literal(row.ScopeNote))
	}

	for _, equivalent := range diagram.Lines(row.EquivalentClass) {
		equivalentIri, err := curie.ToIri(equivalent, c.Namespaces)
		if err != nil {
			return diagerr.At(err, row.Line, diagram.ColEquivalentClass)
		}
		c.Schema.Add(class, model.OwlEquivalentClass, equivalentIri)
	}

	return nil
}

// ConvertClassProperty declares a property drawn inside a class shape.  Such properties take literal values; an
// optional datatype may follow the identifier in parentheses, e.g. "dct:creator (xsd:string)".
func (c *Converter) ConvertClassProperty(definition string, class rdf.IRI) (rdf.IRI, error) {
	property, err := ParseClassProperty(definition)
	if err != nil {
		return rdf.IRI{}, err
	}

	term, err := curie.Split(property.Identifier, c.Namespaces)
	if err != nil {
		return rdf.IRI{}, err
	}

	c.Schema.Add(term.Iri, model.RdfType, model.RdfProperty)
	c.Schema.Add(term.Iri, model.RdfsIsDefinedBy, term.Namespace)

	if term.IsLocal(c.Metadata.Defines) {
		c.Schema.Add(term.Iri, model.RdfsRange, model.RdfsLiteral)
		c.Schema.Add(term.Iri, model.RdfsDomain, class)
	} else {
		c.Schema.Add(term.Iri, model.SdoRangeIncludes, model.RdfsLiteral)
		c.Schema.Add(term.Iri, model.SdoDomainIncludes, class)
	}

	c.emit(term.Iri.String(), EventClassProperty, fmt.Sprintf("%s of %s (local: %t)", property.Identifier, class, term.IsLocal(c.Metadata.Defines)))

	return term.Iri, nil
}

// ConvertLinkProperties declares the properties drawn as links.  The class at the source of a link is the domain of
// its properties, the class at the destination is their range.
func (c *Converter) ConvertLinkProperties(d diagram.Diagram) error {
	for _, link := range d.Links {
		source, err := c.endpoint(d.LinkSource(link))
		if err != nil {
			return err
		}

		destination, err := c.endpoint(d.LinkDestination(link))
		if err != nil {
			return err
		}

		identifiers := diagram.Lines(link.Identifiers)
		if len(identifiers) == 0 {
			return diagerr.At(diagerr.New(diagerr.ErrMalformedIdentifier, "link has no property identifier", link.Id), link.Line, diagram.ColTextArea1)
		}

		for _, identifier := range identifiers {
			term, err := curie.Split(identifier, c.Namespaces)
			if err != nil {
				return diagerr.At(err, link.Line, diagram.ColTextArea1)
			}

			c.Schema.Add(term.Iri, model.RdfType, model.RdfProperty)
			c.Schema.Add(term.Iri, model.RdfsIsDefinedBy, term.Namespace)

			if term.IsLocal(c.Metadata.Defines) {
				c.Schema.Add(term.Iri, model.RdfsDomain, source)
				c.Schema.Add(term.Iri, model.RdfsRange, destination)
				c.describeLinkProperty(term.Iri, link)
			} else {
				c.Schema.Add(term.Iri, model.SdoDomainIncludes, source)
				c.Schema.Add(term.Iri, model.SdoRangeIncludes, destination)
			}

			c.emit(term.Iri.String(), EventLinkProperty, fmt.Sprintf("%s from %s to %s (local: %t)", identifier, source, destination, term.IsLocal(c.Metadata.Defines)))
		}
	}

	return nil
}

func (c *Converter) describeLinkProperty(property rdf.IRI, link diagram.LinkRow) {
	if link.Label != "" {
		c.Schema.Add(property, model.RdfsLabel, literal(link.Label))
	}

	if link.Comment != "" {
		c.Schema.Add(property, model.RdfsComment, literal(link.Comment))
	}

	if link.ScopeNote != "" {
		if c.Options.LegacyLabels {
			c.Schema.Add(property, model.RdfsLabel, literal(link.ScopeNote))
		} else {
			c.Schema.Add(property, model.SkosScopeNote, literal(link.ScopeNote))
		}
	}
}

// endpoint answers the term of the class at one end of a link, using the first of the class's identifiers.
func (c *Converter) endpoint(class diagram.ClassRow, err error) (rdf.IRI, error) {
	if err != nil {
		return rdf.IRI{}, err
	}

	identifiers := diagram.Lines(class.Identifiers)
	if len(identifiers) == 0 {
		return rdf.IRI{}, diagerr.At(diagerr.New(diagerr.ErrInvalidDiagramData, "linked class has no identifier", class.Id), class.Line, diagram.ColTextArea1)
	}

	iri, err := curie.ToIri(identifiers[0], c.Namespaces)
	if err != nil {
		return rdf.IRI{}, diagerr.At(err, class.Line, diagram.ColTextArea1)
	}
	return iri, nil
}

func (c *Converter) emit(target string, eventType int, message string) {
	if c.EventHandler != nil {
		c.EventHandler(Event{Target: target, EventType: eventType, Message: message})
	}
}

func literal(value string) rdf.Literal {
	lit, _ := rdf.NewLiteral(value)
	return lit
}
