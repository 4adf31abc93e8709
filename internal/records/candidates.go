package records

import "github.com/dshills/civiclink/pkg/types"

// RegistryCompanies returns one entity per registry profile, carrying its
// entity number. Parser rejects profiles without a name; any that reach
// here from other callers are kept in the count and never match.
func RegistryCompanies(registry []RegistryEntity) []types.NamedEntity {
	out := make([]types.NamedEntity, 0, len(registry))
	for _, r := range registry {
		e := types.NamedEntity{Name: r.EntityName.String(), Source: types.SourceRegistry}
		if num := r.EntityNumber.String(); num != "" {
			e.Attributes = map[string]string{types.AttrEntityNumber: num}
		}
		out = append(out, e)
	}
	return out
}

// RegistryPeople flattens directors, officers and shareholders of every
// profile, each carrying its role and owning company.
func RegistryPeople(registry []RegistryEntity) []types.NamedEntity {
	var out []types.NamedEntity
	for _, r := range registry {
		for _, p := range r.People() {
			attrs := map[string]string{types.AttrCompany: r.EntityName.String()}
			if role := p.Role.String(); role != "" {
				attrs[types.AttrRole] = role
			}
			if num := r.EntityNumber.String(); num != "" {
				attrs[types.AttrEntityNumber] = num
			}
			out = append(out, types.NamedEntity{
				Name:       p.Name.String(),
				Source:     types.SourceRegistry,
				Attributes: attrs,
			})
		}
	}
	return out
}

// RegistryAddresses returns the registered and mailing addresses of every
// profile.
func RegistryAddresses(registry []RegistryEntity) []types.AddressRecord {
	var out []types.AddressRecord
	for _, r := range registry {
		for _, a := range []struct {
			kind string
			text Text
		}{
			{"registered", r.RegisteredAddress},
			{"mailing", r.MailingAddress},
		} {
			if a.text.String() == "" {
				continue
			}
			attrs := map[string]string{
				types.AttrAddressKind: a.kind,
				types.AttrCompany:     r.EntityName.String(),
			}
			if num := r.EntityNumber.String(); num != "" {
				attrs[types.AttrEntityNumber] = num
			}
			out = append(out, types.AddressRecord{
				Address:    a.text.String(),
				Source:     types.SourceRegistry,
				Attributes: attrs,
			})
		}
	}
	return out
}

// TransferParties returns the distinct vendor and purchaser names of the
// transfers in first-seen order.
func TransferParties(transfers []TransferRecord) []types.NamedEntity {
	var d dedup
	for _, t := range transfers {
		d.add(t.Vendor.String())
		d.add(t.Purchaser.String())
	}
	return d.entities(types.SourceTransfer)
}

// PermitOwners returns the distinct owner names of the permits in
// first-seen order.
func PermitOwners(permits []PermitRecord) []types.NamedEntity {
	var d dedup
	for _, p := range permits {
		d.add(p.Owner.String())
	}
	return d.entities(types.SourcePermit)
}

// TransferAddresses returns the distinct transfer addresses in first-seen order
func TransferAddresses(transfers []TransferRecord) []types.AddressRecord {
	var d dedup
	for _, t := range transfers {
		d.add(t.Address.String())
	}
	return d.addresses(types.SourceTransfer)
}

// PermitAddresses returns the distinct permit addresses in first-seen order
func PermitAddresses(permits []PermitRecord) []types.AddressRecord {
	var d dedup
	for _, p := range permits {
		d.add(p.Address.String())
	}
	return d.addresses(types.SourcePermit)
}

// dedup collects distinct non-empty strings in first-seen order
type dedup struct {
	seen  map[string]struct{}
	order []string
}

func (d *dedup) add(s string) {
	if s == "" {
		return
	}
	if d.seen == nil {
		d.seen = make(map[string]struct{})
	}
	if _, ok := d.seen[s]; ok {
		return
	}
	d.seen[s] = struct{}{}
	d.order = append(d.order, s)
}

func (d *dedup) entities(src types.Source) []types.NamedEntity {
	out := make([]types.NamedEntity, len(d.order))
	for i, s := range d.order {
		out[i] = types.NamedEntity{Name: s, Source: src}
	}
	return out
}

func (d *dedup) addresses(src types.Source) []types.AddressRecord {
	out := make([]types.AddressRecord, len(d.order))
	for i, s := range d.order {
		out[i] = types.AddressRecord{Address: s, Source: src}
	}
	return out
}
