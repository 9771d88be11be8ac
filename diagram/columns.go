package diagram

// Column headings of a Lucid CSV export.  The vocabulary-authoring columns are custom shape data fields, keyed by
// the lower-cased compact name of the property they hold.
const (
	ColId               = "Id"
	ColName             = "Name"
	ColShapeLibrary     = "Shape Library"
	ColPageId           = "Page ID"
	ColContainedBy      = "Contained By"
	ColGroup            = "Group"
	ColLineSource       = "Line Source"
	ColLineDestination  = "Line Destination"
	ColSourceArrow      = "Source Arrow"
	ColDestinationArrow = "Destination Arrow"
	ColStatus           = "Status"
	ColTextArea1        = "Text Area 1"
	ColTextArea2        = "Text Area 2"
	ColTextArea3        = "Text Area 3"

	ColDate            = "dct:date"
	ColDescription     = "dct:description"
	ColIssued          = "dct:issued"
	ColTitle           = "dct:title"
	ColDefines         = "defines"
	ColEquivalentClass = "owl:equivalentclass"
	ColPrefixes        = "prefixes"
	ColComment         = "rdfs:comment"
	ColLabel           = "rdfs:label"
	ColSubClassOf      = "rdfs:subclassof"
	ColScopeNote       = "skos:scopenote"
)

// Columns without which rows cannot be classified or links resolved.
var requiredColumns = []string{
	ColId,
	ColName,
	ColLineSource,
	ColLineDestination,
	ColSourceArrow,
	ColDestinationArrow,
	ColTextArea1,
}

// Values of the Name column
const (
	KindDocument = "Document"
	KindPage     = "Page"
	KindText     = "Text"
	KindClass    = "Class"
	KindLine     = "Line"
)
