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

// Reads the CSV export of a class diagram and partitions its records into metadata, class and link rows.
package diagram

import (
	"diag2rdfs/diagerr"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is a single CSV record keyed by column heading, along with the line it started on.
type Row struct {
	Line   int
	fields map[string]string
}

func NewRow(line int, fields map[string]string) Row {
	return Row{Line: line, fields: fields}
}

// Get answers the value of the named column, or "" if the export has no such column.
func (r Row) Get(column string) string {
	return r.fields[column]
}

// MetaRow carries document-level information: the Document row holds the title, the Page row holds the date, the
// prefix of the vocabulary being defined and the prefix declarations.
type MetaRow struct {
	Line        int
	Id          string
	Kind        string
	TextArea1   string
	Title       string
	Date        string
	Issued      string
	Description string
	Defines     string
	Prefixes    string
}

// ClassRow is a class shape.  Identifiers lists one or more equivalent compact identifiers for the class,
// Properties lists the literal-valued properties drawn inside the shape.
type ClassRow struct {
	Line            int
	Id              string
	Identifiers     string
	Properties      string
	Label           string
	Comment         string
	SubClassOf      string
	ScopeNote       string
	EquivalentClass string
}

// LinkRow is a connector between two class shapes.  Identifiers lists the properties the connector stands for.
type LinkRow struct {
	Line             int
	Id               string
	Source           string
	Destination      string
	SourceArrow      string
	DestinationArrow string
	Identifiers      string
	Label            string
	Comment          string
	ScopeNote        string
}

// Diagram holds the classified rows of an export, each slice in input order.
type Diagram struct {
	Meta    []MetaRow
	Classes []ClassRow
	Links   []LinkRow
}

// Load reads the diagram exported to the file at path.
func Load(path string) (Diagram, error) {
	if strings.TrimSpace(path) == "" {
		return Diagram{}, diagerr.New(diagerr.ErrInvalidArgument, "diagram file name must not be empty", path)
	}

	if info, err := os.Stat(path); err != nil {
		return Diagram{}, diagerr.Wrap(diagerr.ErrInvalidArgument, "unable to open diagram file", path, err)
	} else if info.IsDir() {
		return Diagram{}, diagerr.New(diagerr.ErrInvalidArgument, "diagram file name is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, diagerr.Wrap(diagerr.ErrInvalidArgument, "unable to open diagram file", path, err)
	}

	defer func() { f.Close() }()

	return Read(f)
}

// Read classifies every record of the CSV read from r.  Records whose Name is not one of Document, Page, Text, Class
// or Line are dropped.
func Read(r io.Reader) (Diagram, error) {
	var rows []Row
	var err error

	if rows, err = readRows(r); err != nil {
		return Diagram{}, err
	}

	d := Diagram{}
	for _, row := range rows {
		switch row.Get(ColName) {
		case KindDocument, KindPage, KindText:
			d.Meta = append(d.Meta, metaRow(row))
		case KindClass:
			d.Classes = append(d.Classes, classRow(row))
		case KindLine:
			d.Links = append(d.Links, linkRow(row))
		}
	}

	return d, nil
}

func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, diagerr.New(diagerr.ErrInvalidArgument, "diagram export is empty", "")
	}
	if err != nil {
		return nil, diagerr.Wrap(diagerr.ErrInvalidArgument, "unable to read diagram header", "", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return nil, diagerr.At(diagerr.Wrap(diagerr.ErrInvalidArgument, "unable to read diagram record", "", err), line, "")
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				fields[column] = record[i]
			}
		}
		rows = append(rows, NewRow(line, fields))
	}

	return rows, nil
}

func checkHeader(header []string) error {
	present := map[string]bool{}
	for _, column := range header {
		present[column] = true
	}

	for _, column := range requiredColumns {
		if !present[column] {
			return diagerr.New(diagerr.ErrInvalidArgument, fmt.Sprintf("diagram export is missing the %q column", column), strings.Join(header, ","))
		}
	}

	return nil
}

func metaRow(row Row) MetaRow {
	return MetaRow{
		Line:        row.Line,
		Id:          row.Get(ColId),
		Kind:        row.Get(ColName),
		TextArea1:   row.Get(ColTextArea1),
		Title:       row.Get(ColTitle),
		Date:        strings.TrimSpace(row.Get(ColDate)),
		Issued:      strings.TrimSpace(row.Get(ColIssued)),
		Description: row.Get(ColDescription),
		Defines:     strings.TrimSuffix(strings.TrimSpace(row.Get(ColDefines)), ":"),
		Prefixes:    row.Get(ColPrefixes),
	}
}

func classRow(row Row) ClassRow {
	return ClassRow{
		Line:            row.Line,
		Id:              strings.TrimSpace(row.Get(ColId)),
		Identifiers:     row.Get(ColTextArea1),
		Properties:      row.Get(ColTextArea2),
		Label:           strings.TrimSpace(row.Get(ColLabel)),
		Comment:         strings.TrimSpace(row.Get(ColComment)),
		SubClassOf:      strings.TrimSpace(row.Get(ColSubClassOf)),
		ScopeNote:       strings.TrimSpace(row.Get(ColScopeNote)),
		EquivalentClass: strings.TrimSpace(row.Get(ColEquivalentClass)),
	}
}

func linkRow(row Row) LinkRow {
	return LinkRow{
		Line:             row.Line,
		Id:               strings.TrimSpace(row.Get(ColId)),
		Source:           strings.TrimSpace(row.Get(ColLineSource)),
		Destination:      strings.TrimSpace(row.Get(ColLineDestination)),
		SourceArrow:      strings.TrimSpace(row.Get(ColSourceArrow)),
		DestinationArrow: strings.TrimSpace(row.Get(ColDestinationArrow)),
		Identifiers:      row.Get(ColTextArea1),
		Label:            strings.TrimSpace(row.Get(ColLabel)),
		Comment:          strings.TrimSpace(row.Get(ColComment)),
		ScopeNote:        strings.TrimSpace(row.Get(ColScopeNote)),
	}
}

// Lines splits a multi-valued cell on line breaks, dropping surrounding whitespace and blank entries.
func Lines(cell string) []string {
	var values []string
	for _, value := range strings.Split(cell, "\n") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
