package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/civiclink/internal/matcher"
	"github.com/dshills/civiclink/pkg/types"
)

// candidateFile is one item of a --candidates document
type candidateFile struct {
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	Source     types.Source      `json:"source"`
	Attributes map[string]string `json:"attributes"`
}

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score candidates against a single query",
		Long: `Score a company name, person name or address against candidates.

Candidates come from --candidate flags and/or a --candidates JSON file
holding an array of strings or objects with name (or address), source and
attributes.

Examples:
  civiclink match company "102118427 Saskatchewan Ltd." --candidate "102118427 Sask. Ltd"
  civiclink match person "BATTING TRAVIS" --candidates directors.json
  civiclink match address "306 Ontario Ave" --candidates addresses.json --threshold 0.7`,
	}

	for _, kind := range []matcher.Kind{matcher.KindCompany, matcher.KindPerson, matcher.KindAddress} {
		cmd.AddCommand(newMatchKindCmd(a, kind))
	}
	return cmd
}

func newMatchKindCmd(a *app, kind matcher.Kind) *cobra.Command {
	var (
		file      string
		inline    []string
		threshold float64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   string(kind) + " <query>",
		Short: fmt.Sprintf("Match a %s against candidates", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cands, err := loadCandidates(file, inline)
			if err != nil {
				return err
			}
			if len(cands) == 0 {
				return errors.New("no candidates: use --candidates or --candidate")
			}

			t := a.configThreshold(kind)
			if cmd.Flags().Changed("threshold") {
				t = threshold
			}
			m, err := matcher.New(kind, t)
			if err != nil {
				return err
			}

			rows := matchRows(m, args[0], cands, limit)
			if a.jsonOutput {
				return a.printJSON(map[string]interface{}{
					"query":            args[0],
					"normalized_query": m.Normalize(args[0]),
					"threshold":        m.Threshold(),
					"matches":          rows,
				})
			}

			if len(rows) == 0 {
				a.printf("%s -> no match\n", args[0])
				return nil
			}
			for _, r := range rows {
				a.printf("%s -> %s (score: %g)\n", args[0], r.Text, r.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "candidates", "c", "", "JSON file of candidates")
	cmd.Flags().StringArrayVar(&inline, "candidate", nil, "candidate text (repeatable)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, fmt.Sprintf("minimum score (default from config, %.2f)", matcher.DefaultThreshold(kind)))
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum matches to show (0 for all)")
	return cmd
}

func (a *app) configThreshold(kind matcher.Kind) float64 {
	switch kind {
	case matcher.KindPerson:
		return a.cfg.Thresholds.Person
	case matcher.KindAddress:
		return a.cfg.Thresholds.Address
	default:
		return a.cfg.Thresholds.Company
	}
}

// matchRow is one printed match
type matchRow struct {
	Text       string            `json:"text"`
	Source     types.Source      `json:"source,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Score      float64           `json:"score"`
}

func matchRows(m *matcher.Matcher, query string, cands []candidateFile, limit int) []matchRow {
	rows := make([]matchRow, 0)
	if m.Kind() == matcher.KindAddress {
		records := make([]types.AddressRecord, len(cands))
		for i, c := range cands {
			records[i] = types.AddressRecord{Address: c.text(), Source: c.Source, Attributes: c.Attributes}
		}
		for _, r := range topN(matcher.Match(m, query, records), limit) {
			rows = append(rows, matchRow{r.Candidate.Address, r.Candidate.Source, r.Candidate.Attributes, types.RoundScore(r.Score)})
		}
		return rows
	}

	entities := make([]types.NamedEntity, len(cands))
	for i, c := range cands {
		entities[i] = types.NamedEntity{Name: c.text(), Source: c.Source, Attributes: c.Attributes}
	}
	for _, r := range topN(matcher.Match(m, query, entities), limit) {
		rows = append(rows, matchRow{r.Candidate.Name, r.Candidate.Source, r.Candidate.Attributes, types.RoundScore(r.Score)})
	}
	return rows
}

func topN[C any](r matcher.Results[C], n int) matcher.Results[C] {
	if n <= 0 {
		return r
	}
	return r.Top(n)
}

func (c candidateFile) text() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Address
}

// loadCandidates reads the candidates file, if any, followed by inline
// candidates
func loadCandidates(path string, inline []string) ([]candidateFile, error) {
	var out []candidateFile
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read candidates: %w", err)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("candidates must be a JSON array: %w", err)
		}
		for i, raw := range items {
			raw = bytes.TrimSpace(raw)
			var c candidateFile
			if len(raw) > 0 && raw[0] == '"' {
				if err := json.Unmarshal(raw, &c.Name); err != nil {
					return nil, fmt.Errorf("candidate %d: %w", i, err)
				}
			} else if err := json.Unmarshal(raw, &c); err != nil {
				return nil, fmt.Errorf("candidate %d: %w", i, err)
			}
			if c.Source != "" && !c.Source.Valid() {
				return nil, fmt.Errorf("candidate %d: %w %q", i, types.ErrUnknownSource, c.Source)
			}
			out = append(out, c)
		}
	}
	for _, s := range inline {
		out = append(out, candidateFile{Name: s})
	}
	return out, nil
}
