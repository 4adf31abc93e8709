package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceValid(t *testing.T) {
	assert.True(t, SourceRegistry.Valid())
	assert.True(t, SourceTransfer.Valid())
	assert.True(t, SourcePermit.Valid())
	assert.False(t, Source("").Valid())
	assert.False(t, Source("tax_roll").Valid())
}

func TestEntityAccessors(t *testing.T) {
	e := NamedEntity{Name: "Coleman Co.", Source: SourcePermit}
	assert.Equal(t, "Coleman Co.", e.MatchKey())
	assert.Equal(t, "", e.Attr(AttrRole))
	assert.NoError(t, e.Validate())

	e.Attributes = map[string]string{AttrRole: "Director"}
	assert.Equal(t, "Director", e.Attr(AttrRole))

	a := AddressRecord{Address: "12 Broadway Avenue", Source: "tax_roll"}
	assert.Equal(t, "12 Broadway Avenue", a.MatchKey())
	assert.ErrorIs(t, a.Validate(), ErrUnknownSource)
}

func TestEntityLinkValidate(t *testing.T) {
	valid := EntityLink{
		LeftName:      "102118427 Saskatchewan Ltd.",
		LeftSource:    SourceRegistry,
		LeftMetadata:  map[string]string{AttrEntityNumber: "102118427"},
		MatchedName:   "102118427 Sask. Ltd",
		MatchedSource: SourcePermit,
		Score:         1,
	}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "102118427", valid.EntityNumber())

	tests := []struct {
		name   string
		mutate func(*EntityLink)
		want   error
	}{
		{"empty left", func(l *EntityLink) { l.LeftName = "" }, ErrEmptyLinkName},
		{"empty matched", func(l *EntityLink) { l.MatchedName = "" }, ErrEmptyLinkName},
		{"unknown source", func(l *EntityLink) { l.MatchedSource = "other" }, ErrUnknownSource},
		{"negative score", func(l *EntityLink) { l.Score = -0.1 }, ErrInvalidScore},
		{"score above one", func(l *EntityLink) { l.Score = 1.01 }, ErrInvalidScore},
		{"nan score", func(l *EntityLink) { l.Score = math.NaN() }, ErrInvalidScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			assert.ErrorIs(t, l.Validate(), tt.want)
		})
	}

	assert.Equal(t, "", EntityLink{}.EntityNumber())
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 0.984, RoundScore(62.0/63.0))
	assert.Equal(t, 0.714, RoundScore(10.0/14.0))
	assert.Equal(t, 1.0, RoundScore(1))
	assert.Equal(t, 0.0, RoundScore(0))
}

func TestLinkReportRounded(t *testing.T) {
	report := &LinkReport{
		EntityLinks:     []EntityLink{{LeftName: "a", MatchedName: "b", Score: 62.0 / 63.0}},
		TotalLinksFound: 1,
	}

	rounded := report.Rounded()
	assert.Equal(t, 0.984, rounded.EntityLinks[0].Score)
	assert.Equal(t, 62.0/63.0, report.EntityLinks[0].Score, "original untouched")
	assert.Equal(t, 1, rounded.TotalLinksFound)
	assert.Nil(t, rounded.PersonLinks)
}
