package namespace

// Prefixes bound in every serialization, whether or not the diagram declares them.  They are not used to resolve
// compact identifiers; only prefixes declared on the diagram are.
var wellKnown = map[string]string{
	"rdf":  "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
	"rdfs": "http://www.w3.org/2000/01/rdf-schema#",
	"owl":  "http://www.w3.org/2002/07/owl#",
	"xsd":  "http://www.w3.org/2001/XMLSchema#",
	"skos": "http://www.w3.org/2004/02/skos/core#",
	"sdo":  "http://schema.org/",
	"dct":  "http://purl.org/dc/terms/",
}

// WellKnown answers a new Registry holding the standard vocabulary prefixes.
func WellKnown() *Registry {
	r := NewRegistry()
	for prefix, uri := range wellKnown {
		ns, _ := ResolveBaseUri(uri)
		r.namespaces[prefix] = ns
	}
	return r
}

// Merge answers a new Registry with the entries of base overlaid by those of override.  A namespace bound under two
// prefixes keeps only the override's prefix.
func Merge(base, override *Registry) *Registry {
	merged := NewRegistry()
	overridden := map[string]bool{}
	for _, ns := range override.namespaces {
		overridden[ns.String()] = true
	}
	for prefix, ns := range base.namespaces {
		if !overridden[ns.String()] {
			merged.namespaces[prefix] = ns
		}
	}
	for prefix, ns := range override.namespaces {
		merged.namespaces[prefix] = ns
	}
	return merged
}
