package encode

import (
	"diag2rdfs/diagerr"
	"sort"
	"strings"
)

type Format string

const (
	Turtle   Format = "turtle"
	NTriples Format = "ntriples"
	JsonLd   Format = "jsonld"
)

// FormatInfo describes an output format.
type FormatInfo struct {
	Name      Format
	MimeType  string
	Extension string
}

var formats = map[Format]FormatInfo{
	Turtle:   {Name: Turtle, MimeType: "text/turtle", Extension: ".ttl"},
	NTriples: {Name: NTriples, MimeType: "application/n-triples", Extension: ".nt"},
	JsonLd:   {Name: JsonLd, MimeType: "application/ld+json", Extension: ".jsonld"},
}

// ParseFormat answers the format with the supplied name.  Names are case-insensitive; an empty name answers Turtle.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Turtle, nil
	}

	if _, ok := formats[Format(name)]; !ok {
		return "", diagerr.New(diagerr.ErrInvalidArgument, "unsupported output format (expected one of "+strings.Join(Names(), ", ")+")", name)
	}

	return Format(name), nil
}

func Info(format Format) (FormatInfo, bool) {
	info, ok := formats[format]
	return info, ok
}

// Names answers the names of the supported formats, sorted.
func Names() []string {
	var names []string
	for name := range formats {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
