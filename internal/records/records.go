package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is a loosely typed scalar from extractor output. It decodes a JSON
// string or number as its text and null as "".
type Text string

// UnmarshalJSON implements json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string, number or null, got %s", data)
		}
		*t = Text(n.String())
	}
	return nil
}

// String returns the text with surrounding whitespace removed
func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Person is a director, officer or shareholder listed on a registry profile
type Person struct {
	Name          Text   `json:"name"`
	Role          Text   `json:"role,omitempty"`
	EffectiveDate Text   `json:"effective_date,omitempty"`
	Address       Text   `json:"address,omitempty"`
	Title         Text   `json:"title,omitempty"`
	ShareClass    Text   `json:"share_class,omitempty"`
	SharesHeld    *int64 `json:"shares_held,omitempty"`
}

// ShareClass is one row of a registry share structure table
type ShareClass struct {
	ClassName    Text   `json:"class_name"`
	VotingRights *bool  `json:"voting_rights,omitempty"`
	Authorized   Text   `json:"authorized,omitempty"`
	Issued       *int64 `json:"issued,omitempty"`
}

// Event is one row of a registry event history
type Event struct {
	Type Text `json:"type"`
	Date Text `json:"date"`
}

// RegistryEntity is a corporate registry profile report
type RegistryEntity struct {
	EntityNumber      Text         `json:"entity_number"`
	EntityName        Text         `json:"entity_name" validate:"required"`
	ReportDate        Text         `json:"report_date,omitempty"`
	EntityType        Text         `json:"entity_type,omitempty"`
	EntitySubtype     Text         `json:"entity_subtype,omitempty"`
	Status            Text         `json:"status,omitempty"`
	IncorporationDate Text         `json:"incorporation_date,omitempty"`
	AnnualReturnDue   Text         `json:"annual_return_due,omitempty"`
	NatureOfBusiness  Text         `json:"nature_of_business,omitempty"`
	RegisteredAddress Text         `json:"registered_address,omitempty"`
	MailingAddress    Text         `json:"mailing_address,omitempty"`
	Directors         []Person     `json:"directors,omitempty"`
	Officers          []Person     `json:"officers,omitempty"`
	Shareholders      []Person     `json:"shareholders,omitempty"`
	ShareStructure    []ShareClass `json:"share_structure,omitempty"`
	EventHistory      []Event      `json:"event_history,omitempty"`
}

// People returns directors, officers and shareholders in that order
func (r *RegistryEntity) People() []Person {
	people := make([]Person, 0, len(r.Directors)+len(r.Officers)+len(r.Shareholders))
	people = append(people, r.Directors...)
	people = append(people, r.Officers...)
	for _, s := range r.Shareholders {
		if s.Role == "" {
			s.Role = "Shareholder"
		}
		people = append(people, s)
	}
	return people
}

// TransferRecord is one row of a property transfer list
type TransferRecord struct {
	RollNumber       Text     `json:"roll_number,omitempty"`
	Address          Text     `json:"address" validate:"required_without_all=Vendor Purchaser"`
	Vendor           Text     `json:"vendor" validate:"required_without_all=Purchaser Address"`
	Purchaser        Text     `json:"purchaser" validate:"required_without_all=Vendor Address"`
	SalesDate        Text     `json:"sales_date,omitempty"`
	SalesPrice       *float64 `json:"sales_price,omitempty"`
	PropertyTypeCode Text     `json:"property_type_code,omitempty"`
	PropertyType     Text     `json:"property_type,omitempty"`
}

// PermitRecord is one permit from a building permit report
type PermitRecord struct {
	PermitNumber Text     `json:"permit_number,omitempty"`
	IssueDate    Text     `json:"issue_date,omitempty"`
	Address      Text     `json:"address" validate:"required_without=Owner"`
	Owner        Text     `json:"owner" validate:"required_without=Address"`
	Scope        Text     `json:"scope,omitempty"`
	WorkType     Text     `json:"work_type,omitempty"`
	BuildingType Text     `json:"building_type,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Page         *int     `json:"page,omitempty"`
}
