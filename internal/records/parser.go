package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/civiclink/pkg/types"
)

var (
	// ErrUnknownFormat is returned for a document whose record kind cannot be detected
	ErrUnknownFormat = errors.New("unknown record format")
	// ErrEmptyDocument is returned by DetectKind for an empty array
	ErrEmptyDocument = errors.New("document contains no records")
)

// ParseResult holds the records decoded from one extractor document.
// Only the slice matching Kind is populated.
type ParseResult struct {
	Kind      types.Source
	Registry  []RegistryEntity
	Transfers []TransferRecord
	Permits   []PermitRecord

	// Records skipped because they failed to decode or validate
	Errors []ParseError
}

// ParseError describes one rejected record
type ParseError struct {
	File    string
	Index   int // Position in the document; 0 for a single-object document
	Message string
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", pe.File, pe.Index, pe.Message)
}

// Len returns the number of accepted records
func (pr *ParseResult) Len() int {
	return len(pr.Registry) + len(pr.Transfers) + len(pr.Permits)
}

// HasErrors returns true if any record was rejected
func (pr *ParseResult) HasErrors() bool {
	return len(pr.Errors) > 0
}

// AddError records a rejected record
func (pr *ParseResult) AddError(file string, index int, msg string) {
	pr.Errors = append(pr.Errors, ParseError{File: file, Index: index, Message: msg})
}

// Parser decodes and validates extractor output. It is safe for
// concurrent use.
type Parser struct {
	validate *validator.Validate
}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ParseFile reads and parses one JSON document
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Parse(path, data)
}

// Parse detects the kind of a JSON document and decodes its records.
// Invalid records are reported in ParseResult.Errors and skipped; only an
// undecodable document or an unknown kind is an error. An empty array gives
// an empty result.
func (p *Parser) Parse(name string, data []byte) (*ParseResult, error) {
	kind, err := DetectKind(data)
	if errors.Is(err, ErrEmptyDocument) {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return p.ParseAs(name, data, kind)
}

// ParseAs decodes a JSON document as records of the given kind
func (p *Parser) ParseAs(name string, data []byte, kind types.Source) (*ParseResult, error) {
	elems, err := splitDocument(data)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Kind: kind}
	for i, raw := range elems {
		switch kind {
		case types.SourceRegistry:
			var rec RegistryEntity
			if p.decode(result, name, i, raw, &rec) {
				result.Registry = append(result.Registry, rec)
			}
		case types.SourceTransfer:
			var rec TransferRecord
			if p.decode(result, name, i, raw, &rec) {
				result.Transfers = append(result.Transfers, rec)
			}
		case types.SourcePermit:
			var rec PermitRecord
			if p.decode(result, name, i, raw, &rec) {
				result.Permits = append(result.Permits, rec)
			}
		default:
			return nil, fmt.Errorf("%w: kind %q", ErrUnknownFormat, kind)
		}
	}
	return result, nil
}

// decode unmarshals and validates one record, reporting failures on result
func (p *Parser) decode(result *ParseResult, name string, index int, raw json.RawMessage, target any) bool {
	if err := json.Unmarshal(raw, target); err != nil {
		result.AddError(name, index, fmt.Sprintf("decode: %v", err))
		return false
	}
	if err := p.validate.Struct(target); err != nil {
		result.AddError(name, index, validationMessage(err))
		return false
	}
	return true
}

// DetectKind classifies an extractor document. A single object is a
// registry profile; an array is classified by the keys of its first element.
func DetectKind(data []byte) (types.Source, error) {
	elems, err := splitDocument(data)
	if err != nil {
		return "", err
	}
	if len(elems) == 0 {
		return "", ErrEmptyDocument
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(elems[0], &keys); err != nil {
		return "", fmt.Errorf("%w: records must be JSON objects", ErrUnknownFormat)
	}
	has := func(names ...string) bool {
		for _, n := range names {
			if _, ok := keys[n]; ok {
				return true
			}
		}
		return false
	}

	switch {
	case has("entity_name", "entity_number"):
		return types.SourceRegistry, nil
	case has("vendor", "purchaser", "roll_number"):
		return types.SourceTransfer, nil
	case has("owner", "permit_number"):
		return types.SourcePermit, nil
	default:
		return "", ErrUnknownFormat
	}
}

// splitDocument returns the elements of a JSON array, or the document
// itself when it is a single object
func splitDocument(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnknownFormat)
	}

	switch trimmed[0] {
	case '{':
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", ErrUnknownFormat)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return "invalid record: " + strings.Join(msgs, ", ")
}
