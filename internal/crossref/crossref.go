package crossref

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/civiclink/internal/matcher"
	"github.com/dshills/civiclink/internal/records"
	"github.com/dshills/civiclink/pkg/types"
)

// Input is the set of record collections to cross-reference
type Input struct {
	Registry  []records.RegistryEntity
	Transfers []records.TransferRecord
	Permits   []records.PermitRecord
}

// Options configures a Linker
type Options struct {
	CompanyThreshold float64
	PersonThreshold  float64
	AddressThreshold float64

	// LinkPeople matches registry directors, officers and shareholders
	// against transfer parties.
	LinkPeople bool
	// LinkAddresses matches registry addresses against transfer and
	// permit addresses.
	LinkAddresses bool

	// Workers bounds concurrent queries; <= 0 uses GOMAXPROCS
	Workers int
}

// DefaultOptions returns company-only linking at the default thresholds
func DefaultOptions() Options {
	return Options{
		CompanyThreshold: matcher.DefaultCompanyThreshold,
		PersonThreshold:  matcher.DefaultPersonThreshold,
		AddressThreshold: matcher.DefaultAddressThreshold,
	}
}

// Linker cross-references registry, transfer and permit records.
// It holds no mutable state and is safe for concurrent use.
type Linker struct {
	opts    Options
	company *matcher.Matcher
	person  *matcher.Matcher
	address *matcher.Matcher
}

// New validates the thresholds in opts and creates a Linker
func New(opts Options) (*Linker, error) {
	company, err := matcher.New(matcher.KindCompany, opts.CompanyThreshold)
	if err != nil {
		return nil, fmt.Errorf("company threshold: %w", err)
	}
	person, err := matcher.New(matcher.KindPerson, opts.PersonThreshold)
	if err != nil {
		return nil, fmt.Errorf("person threshold: %w", err)
	}
	address, err := matcher.New(matcher.KindAddress, opts.AddressThreshold)
	if err != nil {
		return nil, fmt.Errorf("address threshold: %w", err)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Linker{opts: opts, company: company, person: person, address: address}, nil
}

// Options returns the effective options
func (l *Linker) Options() Options {
	return l.opts
}

// Link builds the link report for in.
//
// Each registry company is matched against transfer and permit companies,
// then each transfer company against permit companies. A transfer to permit
// link may repeat a correspondence already found through the registry.
// Link only fails when ctx is cancelled.
func (l *Linker) Link(ctx context.Context, in Input) (*types.LinkReport, error) {
	registry := records.RegistryCompanies(in.Registry)
	transfer := records.TransferParties(in.Transfers)
	permit := records.PermitOwners(in.Permits)

	external := make([]types.NamedEntity, 0, len(transfer)+len(permit))
	external = append(external, transfer...)
	external = append(external, permit...)

	registryLinks, err := matchAll(ctx, l.opts.Workers, registry,
		matcher.NewPool(l.company, external), registryLink)
	if err != nil {
		return nil, err
	}
	transferLinks, err := matchAll(ctx, l.opts.Workers, transfer,
		matcher.NewPool(l.company, permit), plainLink)
	if err != nil {
		return nil, err
	}

	links := make([]types.EntityLink, 0, len(registryLinks)+len(transferLinks))
	links = append(links, registryLinks...)
	links = append(links, transferLinks...)

	report := &types.LinkReport{
		EntityLinks:       links,
		RegistryCompanies: len(registry),
		TransferCompanies: len(transfer),
		PermitCompanies:   len(permit),
		TotalLinksFound:   len(links),
	}

	if l.opts.LinkPeople {
		people := records.RegistryPeople(in.Registry)
		report.RegistryPeople = len(people)
		report.PersonLinks, err = matchAll(ctx, l.opts.Workers, people,
			matcher.NewPool(l.person, transfer), registryLink)
		if err != nil {
			return nil, err
		}
	}

	if l.opts.LinkAddresses {
		addrs := records.RegistryAddresses(in.Registry)
		targets := append(records.TransferAddresses(in.Transfers), records.PermitAddresses(in.Permits)...)
		report.AddressLinks, err = matchAll(ctx, l.opts.Workers, addrs,
			matcher.NewPool(l.address, targets), addressLink)
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}

// CrossReference links the three collections at the given company threshold
func CrossReference(ctx context.Context, registry []records.RegistryEntity, transfers []records.TransferRecord, permits []records.PermitRecord, companyThreshold float64) (*types.LinkReport, error) {
	opts := DefaultOptions()
	opts.CompanyThreshold = companyThreshold
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	return l.Link(ctx, Input{Registry: registry, Transfers: transfers, Permits: permits})
}

// matchAll runs every query against pool on a bounded worker group. Each
// query writes only its own slot, so the output order is the query order.
func matchAll[Q, C matcher.Candidate](
	ctx context.Context,
	workers int,
	queries []Q,
	pool *matcher.Pool[C],
	link func(Q, types.MatchResult[C]) types.EntityLink,
) ([]types.EntityLink, error) {
	slots := make([][]types.EntityLink, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, r := range pool.Match(q.MatchKey()) {
				slots[i] = append(slots[i], link(q, r))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	links := make([]types.EntityLink, 0)
	for _, s := range slots {
		links = append(links, s...)
	}
	return links, nil
}

func plainLink(q types.NamedEntity, r types.MatchResult[types.NamedEntity]) types.EntityLink {
	return types.EntityLink{
		LeftName:      q.Name,
		LeftSource:    q.Source,
		MatchedName:   r.Candidate.Name,
		MatchedSource: r.Candidate.Source,
		Score:         r.Score,
	}
}

// registryLink carries the left entity's attributes (entity number, role,
// owning company) as link metadata
func registryLink(q types.NamedEntity, r types.MatchResult[types.NamedEntity]) types.EntityLink {
	l := plainLink(q, r)
	l.LeftMetadata = copyAttrs(q.Attributes)
	return l
}

func addressLink(q types.AddressRecord, r types.MatchResult[types.AddressRecord]) types.EntityLink {
	return types.EntityLink{
		LeftName:      q.Address,
		LeftSource:    q.Source,
		LeftMetadata:  copyAttrs(q.Attributes),
		MatchedName:   r.Candidate.Address,
		MatchedSource: r.Candidate.Source,
		Score:         r.Score,
	}
}

func copyAttrs(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
