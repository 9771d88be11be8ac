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

package diagram

import (
	"diag2rdfs/diagerr"
	"github.com/yourbasic/graph"
	"sort"
)

// Arrow is the marker drawn at one end of a connector.
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowHead
)

// Marker values found in the Source Arrow and Destination Arrow columns
const (
	MarkerNone  = "None"
	MarkerArrow = "Arrow"
)

// ParseArrow answers the Arrow for a marker value; anything other than "None" or "Arrow" is invalid diagram data.
func ParseArrow(marker string) (Arrow, error) {
	switch marker {
	case MarkerNone:
		return ArrowNone, nil
	case MarkerArrow:
		return ArrowHead, nil
	default:
		return ArrowNone, diagerr.New(diagerr.ErrInvalidDiagramData, "unknown arrow marker", marker)
	}
}

// An arrowhead marks the destination of a relationship, so the end without one is its source.  A connector drawn
// from the class it points at carries its arrowhead on the "source" end, in which case the roles of the two ends
// are swapped.

// SourceId answers the Id of the shape at the semantic source of the link.
func (l LinkRow) SourceId() (string, error) {
	arrow, err := ParseArrow(l.SourceArrow)
	if err != nil {
		return "", diagerr.At(err, l.Line, ColSourceArrow)
	}
	if arrow == ArrowNone {
		return l.Source, nil
	}
	return l.Destination, nil
}

// DestinationId answers the Id of the shape at the semantic destination of the link.
func (l LinkRow) DestinationId() (string, error) {
	arrow, err := ParseArrow(l.DestinationArrow)
	if err != nil {
		return "", diagerr.At(err, l.Line, ColDestinationArrow)
	}
	if arrow == ArrowHead {
		return l.Destination, nil
	}
	return l.Source, nil
}

// FindClassById answers the class row with the supplied Id.
func (d Diagram) FindClassById(id string) (ClassRow, error) {
	for _, class := range d.Classes {
		if class.Id == id {
			return class, nil
		}
	}
	return ClassRow{}, diagerr.New(diagerr.ErrClassNotFound, "could not find class with id", id)
}

// LinkSource answers the class row at the semantic source of the link.
func (d Diagram) LinkSource(l LinkRow) (ClassRow, error) {
	id, err := l.SourceId()
	if err != nil {
		return ClassRow{}, err
	}
	class, err := d.FindClassById(id)
	if err != nil {
		return ClassRow{}, diagerr.At(err, l.Line, ColLineSource)
	}
	return class, nil
}

// LinkDestination answers the class row at the semantic destination of the link.
func (d Diagram) LinkDestination(l LinkRow) (ClassRow, error) {
	id, err := l.DestinationId()
	if err != nil {
		return ClassRow{}, err
	}
	class, err := d.FindClassById(id)
	if err != nil {
		return ClassRow{}, diagerr.At(err, l.Line, ColLineDestination)
	}
	return class, nil
}

// Components partitions the class rows into groups connected by links, regardless of arrow direction.  Links with an
// endpoint that is not a class are ignored.  Groups and their members are in input order.
func (d Diagram) Components() [][]ClassRow {
	index := map[string]int{}
	for i, class := range d.Classes {
		if _, exists := index[class.Id]; !exists {
			index[class.Id] = i
		}
	}

	g := graph.New(len(d.Classes))
	for _, l := range d.Links {
		v, vok := index[l.Source]
		w, wok := index[l.Destination]
		if vok && wok {
			g.AddBoth(v, w)
		}
	}

	partition := graph.Components(g)
	for _, component := range partition {
		sort.Ints(component)
	}
	sort.Slice(partition, func(i, j int) bool {
		return partition[i][0] < partition[j][0]
	})

	var components [][]ClassRow
	for _, component := range partition {
		classes := make([]ClassRow, 0, len(component))
		for _, v := range component {
			classes = append(classes, d.Classes[v])
		}
		components = append(components, classes)
	}

	return components
}

// Unlinked answers the class rows no link touches.
func (d Diagram) Unlinked() []ClassRow {
	linked := map[string]bool{}
	for _, l := range d.Links {
		linked[l.Source] = true
		linked[l.Destination] = true
	}

	var unlinked []ClassRow
	for _, component := range d.Components() {
		if len(component) == 1 && !linked[component[0].Id] {
			unlinked = append(unlinked, component[0])
		}
	}
	return unlinked
}
