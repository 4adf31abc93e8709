package records

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/civiclink/pkg/types"
)

func TestRegistryCandidates(t *testing.T) {
	registry := []RegistryEntity{
		{
			EntityNumber:      "102118427",
			EntityName:        "102118427 Saskatchewan Ltd.",
			RegisteredAddress: "306 Ontario Avenue, Saskatoon",
			MailingAddress:    "PO Box 12, Saskatoon",
			Directors:         []Person{{Name: "Travis Batting", Role: "Director"}},
			Shareholders:      []Person{{Name: "Francois Messier"}},
		},
		{EntityName: "Acme Builders Ltd"},
	}

	companies := RegistryCompanies(registry)
	require.Len(t, companies, 2)
	assert.Equal(t, "102118427", companies[0].Attr(types.AttrEntityNumber))
	assert.Equal(t, types.SourceRegistry, companies[1].Source)
	assert.Empty(t, companies[1].Attr(types.AttrEntityNumber))

	people := RegistryPeople(registry)
	require.Len(t, people, 2)
	assert.Equal(t, "Director", people[0].Attr(types.AttrRole))
	assert.Equal(t, "Shareholder", people[1].Attr(types.AttrRole))
	assert.Equal(t, "102118427 Saskatchewan Ltd.", people[1].Attr(types.AttrCompany))

	addrs := RegistryAddresses(registry)
	require.Len(t, addrs, 2)
	assert.Equal(t, "registered", addrs[0].Attr(types.AttrAddressKind))
	assert.Equal(t, "mailing", addrs[1].Attr(types.AttrAddressKind))
}

func TestRegistryCompaniesNameless(t *testing.T) {
	result, err := New().Parse("reg.json", []byte(`[{"entity_number": "7", "entity_name": ""}, {"entity_name": "Acme"}]`))
	require.NoError(t, err)
	require.Len(t, result.Registry, 1)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, RegistryCompanies(result.Registry), 1)

	companies := RegistryCompanies([]RegistryEntity{{EntityNumber: "7"}, {EntityName: "Acme"}})
	require.Len(t, companies, 2)
	assert.Empty(t, companies[0].Name)
	assert.Equal(t, "7", companies[0].Attr(types.AttrEntityNumber))
}

func TestTransferPartiesDeduplicated(t *testing.T) {
	transfers := make([]TransferRecord, 0, 101)
	for i := 0; i < 100; i++ {
		transfers = append(transfers, TransferRecord{
			Vendor:  "Boardwalk Reit Properties Holdings Ltd",
			Address: Text(fmt.Sprintf("%d 5th Ave N", i)),
		})
	}
	transfers = append(transfers, TransferRecord{Vendor: "Acme", Purchaser: "Boardwalk Reit Properties Holdings Ltd"})

	parties := TransferParties(transfers)
	require.Len(t, parties, 2)
	assert.Equal(t, "Boardwalk Reit Properties Holdings Ltd", parties[0].Name)
	assert.Equal(t, "Acme", parties[1].Name)
	assert.Equal(t, types.SourceTransfer, parties[0].Source)

	assert.Len(t, TransferAddresses(transfers), 100)
}

func TestPermitOwners(t *testing.T) {
	permits := []PermitRecord{
		{Owner: "Acme", Address: "1 Main St"},
		{Owner: "", Address: "1 Main St"},
		{Owner: "Acme"},
		{Owner: "Zenith"},
	}

	owners := PermitOwners(permits)
	require.Len(t, owners, 2)
	assert.Equal(t, []string{"Acme", "Zenith"}, []string{owners[0].Name, owners[1].Name})
	assert.Equal(t, types.SourcePermit, owners[0].Source)

	assert.Len(t, PermitAddresses(permits), 1)
}

func TestCandidatesEmpty(t *testing.T) {
	assert.Empty(t, RegistryCompanies(nil))
	assert.Empty(t, RegistryPeople(nil))
	assert.Empty(t, TransferParties(nil))
	assert.Empty(t, PermitOwners(nil))
}
