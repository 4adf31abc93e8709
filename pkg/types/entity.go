package types

import "errors"

// Source identifies which civic document family a record came from
type Source string

const (
	SourceRegistry Source = "registry" // Corporate registry profile reports
	SourceTransfer Source = "transfer" // Property transfer lists
	SourcePermit   Source = "permit"   // Building permit reports
)

// Valid reports whether s is one of the known sources
func (s Source) Valid() bool {
	switch s {
	case SourceRegistry, SourceTransfer, SourcePermit:
		return true
	default:
		return false
	}
}

// Well-known attribute keys carried on entities and links
const (
	AttrEntityNumber = "entity_number"
	AttrRole         = "role"
	AttrCompany      = "company"
	AttrAddressKind  = "address_kind"
)

// NamedEntity is a company or person as referenced by one data source.
// Values are treated as immutable once produced.
type NamedEntity struct {
	Name       string
	Source     Source
	Attributes map[string]string // Optional source metadata (entity number, role, ...)
}

// MatchKey returns the field compared during matching
func (e NamedEntity) MatchKey() string {
	return e.Name
}

// Attr returns an attribute value, or "" when absent
func (e NamedEntity) Attr(key string) string {
	if e.Attributes == nil {
		return ""
	}
	return e.Attributes[key]
}

// AddressRecord is a civic address as referenced by one data source
type AddressRecord struct {
	Address    string
	Source     Source
	Attributes map[string]string
}

// MatchKey returns the field compared during matching
func (a AddressRecord) MatchKey() string {
	return a.Address
}

// Attr returns an attribute value, or "" when absent
func (a AddressRecord) Attr(key string) string {
	if a.Attributes == nil {
		return ""
	}
	return a.Attributes[key]
}

// Validate checks the entity carries a known source
func (e NamedEntity) Validate() error {
	if e.Source != "" && !e.Source.Valid() {
		return ErrUnknownSource
	}
	return nil
}

// Validate checks the address record carries a known source
func (a AddressRecord) Validate() error {
	if a.Source != "" && !a.Source.Valid() {
		return ErrUnknownSource
	}
	return nil
}

// ErrUnknownSource is returned for a Source outside the known set
var ErrUnknownSource = errors.New("unknown source")
