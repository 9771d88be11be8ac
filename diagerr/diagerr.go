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

// Error kinds raised while converting a diagram.  Every error aborts the conversion; callers test for a kind with
// errors.Is and map it to a process exit code with ExitCode.
package diagerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrMalformedUri        = errors.New("malformed uri")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrUnknownPrefix       = errors.New("unknown prefix")
	ErrClassNotFound       = errors.New("class not found")
	ErrInvalidDiagramData  = errors.New("invalid diagram data")
	ErrAmbiguousReference  = errors.New("ambiguous reference")
)

const (
	ExitOk = iota
	ExitFailure
	ExitUsage
	ExitInvalidArgument
	ExitMalformedUri
	ExitMalformedIdentifier
	ExitUnknownPrefix
	ExitClassNotFound
	ExitInvalidDiagramData
	ExitAmbiguousReference
)

var exitCodes = []struct {
	kind error
	code int
}{
	{ErrInvalidArgument, ExitInvalidArgument},
	{ErrMalformedUri, ExitMalformedUri},
	{ErrMalformedIdentifier, ExitMalformedIdentifier},
	{ErrUnknownPrefix, ExitUnknownPrefix},
	{ErrClassNotFound, ExitClassNotFound},
	{ErrInvalidDiagramData, ExitInvalidDiagramData},
	{ErrAmbiguousReference, ExitAmbiguousReference},
}

// DiagErr describes a failure in terms of the diagram: the offending value and, when known, the CSV line and column
// it came from.
type DiagErr struct {
	Kind    error
	Message string
	Value   string
	// 1-based line of the CSV record, 0 when unknown
	Line  int
	Field string
	// underlying cause, if any
	Wrapped error
}

func New(kind error, message, value string) DiagErr {
	return DiagErr{Kind: kind, Message: message, Value: value}
}

func Wrap(kind error, message, value string, wrapped error) DiagErr {
	return DiagErr{Kind: kind, Message: message, Value: value, Wrapped: wrapped}
}

func (de DiagErr) Error() string {
	b := strings.Builder{}
	b.WriteString(de.Kind.Error())
	if de.Line > 0 {
		b.WriteString(fmt.Sprintf(" (line %d", de.Line))
		if de.Field != "" {
			b.WriteString(fmt.Sprintf(", column %q", de.Field))
		}
		b.WriteString(")")
	} else if de.Field != "" {
		b.WriteString(fmt.Sprintf(" (column %q)", de.Field))
	}
	b.WriteString(": ")
	b.WriteString(de.Message)
	if de.Value != "" {
		b.WriteString(fmt.Sprintf(": %q", de.Value))
	}
	if de.Wrapped != nil {
		b.WriteString(fmt.Sprintf(": %s", de.Wrapped.Error()))
	}
	return b.String()
}

// Is reports a match on the error kind, so errors.Is(err, ErrUnknownPrefix) holds for any DiagErr of that kind.
func (de DiagErr) Is(target error) bool {
	return de.Kind == target
}

func (de DiagErr) Unwrap() error {
	return de.Wrapped
}

// At answers a copy of err located at the supplied CSV line and column.  Location already present on err is kept,
// and errors that are not a DiagErr are returned unchanged.
func At(err error, line int, field string) error {
	var de DiagErr
	if !errors.As(err, &de) {
		return err
	}
	if de.Line == 0 {
		de.Line = line
	}
	if de.Field == "" {
		de.Field = field
	}
	return de
}

// ExitCode answers the process exit code for err: ExitOk for nil, a distinct code per error kind, ExitFailure for
// anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOk
	}

	// the outermost kind wins over kinds it wraps
	var de DiagErr
	if errors.As(err, &de) {
		for _, ec := range exitCodes {
			if de.Kind == ec.kind {
				return ec.code
			}
		}
	}

	for _, ec := range exitCodes {
		if errors.Is(err, ec.kind) {
			return ec.code
		}
	}
	return ExitFailure
}
