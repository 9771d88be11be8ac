package persistence

import (
	"diag2rdfs/convert"
	"diag2rdfs/diagerr"
	"errors"
	"fmt"
	"github.com/knakk/rdf"
	"strings"
)

var (
	ErrNotFound = errors.New("persistence: vocabulary not found")
	ErrMaxRetry = errors.New("persistence: maximum retries exceeded")
)

type txOp string

const (
	begin    txOp = "begin"
	commit   txOp = "commit"
	rollback txOp = "rollback"
)

// StoreErr wraps an error from the underlying database together with the operation that raised it.
type StoreErr struct {
	Message    string
	Underlying error
}

func (se StoreErr) Error() string {
	if se.Underlying == nil {
		return se.Message
	}
	return fmt.Sprintf("%s: %v", se.Message, se.Underlying)
}

func (se StoreErr) Unwrap() error {
	return se.Underlying
}

func NewErrTx(op txOp, vocab string, err error, pkg, method string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: unable to %s transaction for vocabulary %s", pkg, method, op, vocab),
		Underlying: err,
	}
}

func NewErrQuery(query string, err error, pkg, method string, args ...string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: error executing '%s' with arguments [%s]", pkg, method, query, strings.Join(args, ", ")),
		Underlying: err,
	}
}

func NewErrRowScan(query string, err error, pkg, method string, args ...string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: error scanning the result of '%s' with arguments [%s]", pkg, method, query, strings.Join(args, ", ")),
		Underlying: err,
	}
}

func NewErrClose(err error, pkg, method string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: error closing result set", pkg, method),
		Underlying: err,
	}
}

func NewErrDecode(vocab string, err error, pkg, method string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: unable to decode the stored triples of vocabulary %s", pkg, method, vocab),
		Underlying: err,
	}
}

func NewErrNotFound(vocab string, pkg, method string) StoreErr {
	return StoreErr{
		Message:    fmt.Sprintf("%s.%s: %s", pkg, method, vocab),
		Underlying: ErrNotFound,
	}
}

// MaxRetryErr is answered when an operation failed with a retryable error on every try.
type MaxRetryErr struct {
	Tries int
	Last  error
}

func (e MaxRetryErr) Error() string {
	return fmt.Sprintf("%v after %d tries: %v", ErrMaxRetry, e.Tries, e.Last)
}

func (e MaxRetryErr) Is(target error) bool {
	return target == ErrMaxRetry
}

func (e MaxRetryErr) Unwrap() error {
	return e.Last
}

func NewErrMaxRetry(err error, tries int) error {
	return MaxRetryErr{Tries: tries, Last: err}
}

// Vocabulary is a converted diagram as kept by a Store, keyed by the IRI of the namespace it defines.
type Vocabulary struct {
	Vocab   string
	Prefix  string
	Title   string
	Date    string
	Triples []rdf.Triple
}

// FromConverter answers the vocabulary produced by the last conversion of c.  The diagram must define a prefix that it
// also declares.
func FromConverter(c *convert.Converter) (Vocabulary, error) {
	ns, err := c.Namespaces.Lookup(c.Metadata.Defines)
	if err != nil {
		return Vocabulary{}, diagerr.Wrap(diagerr.ErrInvalidArgument, "diagram does not define a declared prefix", c.Metadata.Defines, err)
	}

	return Vocabulary{
		Vocab:   ns.String(),
		Prefix:  c.Metadata.Defines,
		Title:   c.Metadata.Title,
		Date:    c.Metadata.Date,
		Triples: c.Schema.Grouped(),
	}, nil
}

type Store interface {
	// StoreVocabulary persists v, replacing any triples earlier stored for the same vocabulary.
	StoreVocabulary(v Vocabulary) error
	Retrieve(vocab string) (Vocabulary, error)
	// Vocabularies answers the keys of the stored vocabularies, sorted.
	Vocabularies() ([]string, error)
	Close() error
}
