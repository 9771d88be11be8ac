package convert

import (
	"diag2rdfs/diagerr"
	"strings"
)

// ClassProperty is one line of the property list drawn inside a class shape.
type ClassProperty struct {
	Identifier string
	// datatype hint given in parentheses; parsed but not yet asserted
	Datatype string
}

// ParseClassProperty splits a definition such as "dct:creator (xsd:string)" into identifier and datatype hint.
func ParseClassProperty(definition string) (ClassProperty, error) {
	definition = strings.TrimSpace(definition)
	if definition == "" {
		return ClassProperty{}, diagerr.New(diagerr.ErrInvalidArgument, "class property definition must not be empty", definition)
	}

	i := strings.Index(definition, "(")
	if i < 0 {
		return ClassProperty{Identifier: definition}, nil
	}

	property := ClassProperty{
		Identifier: strings.TrimSpace(definition[:i]),
		Datatype:   strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(definition[i+1:]), ")")),
	}

	if property.Identifier == "" {
		return ClassProperty{}, diagerr.New(diagerr.ErrInvalidArgument, "class property definition has no identifier", definition)
	}

	return property, nil
}
