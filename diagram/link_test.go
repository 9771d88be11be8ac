package diagram

import (
	"diag2rdfs/diagerr"
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func linked(source, destination, sourceArrow, destinationArrow string) Diagram {
	return Diagram{
		Classes: []ClassRow{
			{Id: "5", Identifiers: "desm:AbstractClassSet"},
			{Id: "7", Identifiers: "desm:AbstractClassMapping"},
			{Id: "11", Identifiers: "desm:Orphan"},
		},
		Links: []LinkRow{
			{Line: 13, Id: "8", Source: source, Destination: destination, SourceArrow: sourceArrow, DestinationArrow: destinationArrow},
		},
	}
}

func Test_ParseArrow(t *testing.T) {
	arrow, err := ParseArrow("None")
	assert.Nil(t, err)
	assert.Equal(t, ArrowNone, arrow)

	arrow, err = ParseArrow("Arrow")
	assert.Nil(t, err)
	assert.Equal(t, ArrowHead, arrow)

	for _, marker := range []string{"", "arrow", "Open Arrow", "none"} {
		_, err = ParseArrow(marker)
		assert.True(t, errors.Is(err, diagerr.ErrInvalidDiagramData), "%q", marker)
	}
}

func Test_LinkDrawnForwards(t *testing.T) {
	d := linked("7", "5", MarkerNone, MarkerArrow)

	source, err := d.LinkSource(d.Links[0])
	assert.Nil(t, err)
	assert.Equal(t, "desm:AbstractClassMapping", source.Identifiers)

	destination, err := d.LinkDestination(d.Links[0])
	assert.Nil(t, err)
	assert.Equal(t, "desm:AbstractClassSet", destination.Identifiers)
}

func Test_LinkDrawnBackwards(t *testing.T) {
	d := linked("7", "5", MarkerArrow, MarkerNone)

	source, err := d.LinkSource(d.Links[0])
	assert.Nil(t, err)
	assert.Equal(t, "desm:AbstractClassSet", source.Identifiers)

	destination, err := d.LinkDestination(d.Links[0])
	assert.Nil(t, err)
	assert.Equal(t, "desm:AbstractClassMapping", destination.Identifiers)
}

// Flipping the source marker and swapping the two endpoints resolves to the same source.
func Test_SourceSymmetricUnderNegation(t *testing.T) {
	for _, ends := range [][2]string{{"7", "5"}, {"5", "7"}, {"5", "5"}} {
		for _, marker := range []string{MarkerNone, MarkerArrow} {
			flipped := MarkerArrow
			if marker == MarkerArrow {
				flipped = MarkerNone
			}

			l := LinkRow{Source: ends[0], Destination: ends[1], SourceArrow: marker, DestinationArrow: MarkerArrow}
			negated := LinkRow{Source: ends[1], Destination: ends[0], SourceArrow: flipped, DestinationArrow: MarkerArrow}

			a, err := l.SourceId()
			assert.Nil(t, err)
			b, err := negated.SourceId()
			assert.Nil(t, err)
			assert.Equal(t, a, b)
		}
	}
}

func Test_BothEndsSameMarker(t *testing.T) {
	// no arrowheads: both roles resolve to the line's source
	d := linked("7", "5", MarkerNone, MarkerNone)
	source, _ := d.LinkSource(d.Links[0])
	destination, _ := d.LinkDestination(d.Links[0])
	assert.Equal(t, "7", source.Id)
	assert.Equal(t, "7", destination.Id)

	// two arrowheads: both roles resolve to the line's destination
	d = linked("7", "5", MarkerArrow, MarkerArrow)
	source, _ = d.LinkSource(d.Links[0])
	destination, _ = d.LinkDestination(d.Links[0])
	assert.Equal(t, "5", source.Id)
	assert.Equal(t, "5", destination.Id)
}

func Test_LinkUnknownMarker(t *testing.T) {
	d := linked("7", "5", "Diamond", MarkerArrow)
	_, err := d.LinkSource(d.Links[0])
	assert.True(t, errors.Is(err, diagerr.ErrInvalidDiagramData))
	assert.Contains(t, err.Error(), "line 13")
	assert.Contains(t, err.Error(), ColSourceArrow)

	d = linked("7", "5", MarkerNone, "Diamond")
	_, err = d.LinkDestination(d.Links[0])
	assert.True(t, errors.Is(err, diagerr.ErrInvalidDiagramData))
	assert.Contains(t, err.Error(), ColDestinationArrow)
}

func Test_FindClassById(t *testing.T) {
	d := linked("7", "5", MarkerNone, MarkerArrow)

	class, err := d.FindClassById("7")
	assert.Nil(t, err)
	assert.Equal(t, "desm:AbstractClassMapping", class.Identifiers)

	_, err = d.FindClassById("42")
	assert.True(t, errors.Is(err, diagerr.ErrClassNotFound))
	assert.Contains(t, err.Error(), "42")
}

func Test_LinkToMissingClass(t *testing.T) {
	d := linked("7", "42", MarkerNone, MarkerArrow)

	_, err := d.LinkSource(d.Links[0])
	assert.Nil(t, err)

	_, err = d.LinkDestination(d.Links[0])
	assert.True(t, errors.Is(err, diagerr.ErrClassNotFound))
	assert.Contains(t, err.Error(), ColLineDestination)
}

func Test_Components(t *testing.T) {
	d := linked("7", "5", MarkerNone, MarkerArrow)

	components := d.Components()
	assert.Equal(t, 2, len(components))
	assert.Equal(t, []string{"5", "7"}, []string{components[0][0].Id, components[0][1].Id})
	assert.Equal(t, "11", components[1][0].Id)

	unlinked := d.Unlinked()
	assert.Equal(t, 1, len(unlinked))
	assert.Equal(t, "desm:Orphan", unlinked[0].Identifiers)
}

func Test_ComponentsSelfLoop(t *testing.T) {
	d := linked("11", "11", MarkerNone, MarkerArrow)

	// a class linked only to itself is not reported as unlinked
	for _, class := range d.Unlinked() {
		assert.NotEqual(t, "11", class.Id)
	}
	assert.Equal(t, 2, len(d.Unlinked()))
}
