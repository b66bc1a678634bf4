//Package rules projects the ruleset document into flat display rules for the
//Learn UI and provides keyword search over them. Display only: settlement
//never reads these projections.
package rules

import (
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/readysethu/huserver/internal/ruleset"
	"github.com/readysethu/huserver/protocol"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

var logger = log.WithField("component", "rules")

const searchLimit = 20

type Store struct {
	scoring []protocol.Rule
	basics  []protocol.BasicRule

	// lightweight search entries for basics, points always zero
	basicRules []protocol.Rule
}

// NewStore builds the display projection from the loaded ruleset and the
// optional basics file. A missing or malformed basics file only disables the
// basics list, it never fails startup.
func NewStore(rs *ruleset.Ruleset, basicsPath string) *Store {
	s := &Store{}
	s.project(rs)
	if basicsPath != "" {
		s.loadBasics(basicsPath)
	}
	return s
}

func (s *Store) project(rs *ruleset.Ruleset) {
	for _, h := range rs.Hands {
		if h.ID == "" {
			continue
		}
		name := h.Name.En()
		if name == "" {
			name = h.ID
		}
		s.scoring = append(s.scoring, protocol.Rule{
			ID:          h.ID,
			Name:        name,
			NameCN:      h.Name.ZH,
			Description: h.DescriptionOneLine.Zh(),
			Points:      h.Scoring.BaseMultiplier,
			Category:    protocol.CategoryHandType,
		})
	}

	for _, f := range rs.Multipliers.Factors {
		if f.ID == "" {
			continue
		}
		var points int
		switch f.Type {
		case ruleset.FactorTypeBoolean:
			points = f.Apply.Multiplier
			if points == 0 {
				points = 1
			}
		case ruleset.FactorTypeCountable:
			points = f.Apply.MultiplierEach
			if points == 0 {
				points = 1
			}
		}
		desc := f.Description.Zh()
		if f.Type == ruleset.FactorTypeCountable {
			desc += "（可重复）"
		}
		name := f.Name.En()
		if name == "" {
			name = f.ID
		}
		s.scoring = append(s.scoring, protocol.Rule{
			ID:          f.ID,
			Name:        name,
			NameCN:      f.Name.ZH,
			Description: desc,
			Points:      points,
			Category:    protocol.CategoryExtra,
		})
	}
}

type basicRuleDoc struct {
	ID          string       `json:"id"`
	Name        ruleset.Text `json:"name"`
	Description ruleset.Text `json:"description"`
	Section     string       `json:"section"`
}

func (s *Store) loadBasics(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnf("basic rules not loaded: %v", err)
		return
	}
	var docs []basicRuleDoc
	if err := codec.Unmarshal(data, &docs); err != nil {
		logger.Warnf("basic rules not loaded: %v", err)
		return
	}

	for _, doc := range docs {
		if doc.ID == "" {
			continue
		}
		nameEN := doc.Name.En()
		if nameEN == "" {
			nameEN = doc.ID
		}
		section := protocol.BasicRuleSection(strings.ToLower(strings.TrimSpace(doc.Section)))
		switch section {
		case protocol.SectionBeforeGame, protocol.SectionDuringTurn, protocol.SectionWinningScoring:
		default:
			section = protocol.SectionWinningScoring
		}

		s.basics = append(s.basics, protocol.BasicRule{
			ID:            doc.ID,
			NameEN:        nameEN,
			NameCN:        doc.Name.ZH,
			DescriptionEN: doc.Description.EN,
			DescriptionCN: doc.Description.ZH,
			Section:       section,
		})
		desc := doc.Description.Zh()
		s.basicRules = append(s.basicRules, protocol.Rule{
			ID:          doc.ID,
			Name:        nameEN,
			NameCN:      doc.Name.ZH,
			Description: desc,
		})
	}
	logger.Infof("loaded %d basic rules from %s", len(s.basics), path)
}

// Rules returns all scoring rules, hands first then factors.
func (s *Store) Rules() []protocol.Rule {
	return s.scoring
}

// Basics returns the non-scoring rules for the Learn UI.
func (s *Store) Basics() []protocol.BasicRule {
	return s.basics
}

// Search matches the query case-insensitively against id/name/name_cn/
// description of both scoring and basic rules. Results are rule ids ordered
// by occurrence count, ties broken by id, at most 20.
func (s *Store) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}

	type scored struct {
		score int
		id    string
	}
	var hits []scored
	collect := func(rules []protocol.Rule) {
		for _, r := range rules {
			haystack := strings.ToLower(strings.Join([]string{r.ID, r.Name, r.NameCN, r.Description}, " "))
			if n := strings.Count(haystack, q); n > 0 {
				hits = append(hits, scored{score: n, id: r.ID})
			}
		}
	}
	collect(s.scoring)
	collect(s.basicRules)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})

	ids := make([]string, 0, searchLimit)
	for _, h := range hits {
		if len(ids) == searchLimit {
			break
		}
		ids = append(ids, h.id)
	}
	return ids
}
