package services

import (
	"sort"
	"strings"

	"github.com/epz-tools/udiscan/internal/core/domain"
	"github.com/epz-tools/udiscan/internal/core/ports/driving"
	"github.com/epz-tools/udiscan/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driving.LookupService = (*Searcher)(nil)

// Searcher resolves identifier/reference cross-references against one
// built catalog index. The index is owned by the searcher and never
// mutated; load a new catalog by constructing a new searcher.
//
// A searcher over a nil index (catalog missing or failed to load)
// answers every lookup with "".
type Searcher struct {
	index *Index
}

// NewSearcher creates a searcher over a built index.
func NewSearcher(index *Index) *Searcher {
	return &Searcher{index: index}
}

// Reference resolves the reference number for a GTIN.
func (s *Searcher) Reference(gtin string) string {
	logger.Info("lookup: reference for GTIN %q", gtin)
	return s.resolve(gtin, true)
}

// Identifier resolves the GTIN for a reference number.
func (s *Searcher) Identifier(ref string) string {
	logger.Info("lookup: GTIN for reference %q", ref)
	return s.resolve(ref, false)
}

// Stats reports counts for the underlying index.
func (s *Searcher) Stats() domain.CatalogStats {
	return s.index.Stats()
}

// resolve maps a term of one kind to the opposite field. The direct
// index is probed first; on a miss (or when the matched record has no
// extractable opposite field) the term index takes over, with a
// first-match-only substring scan as the last resort.
func (s *Searcher) resolve(term string, wantReference bool) string {
	if s.index == nil {
		logger.Warn("lookup: no catalog loaded")
		return ""
	}

	term = strings.ToLower(term)
	direct := s.index.identifiers
	wantMarker := markerRef
	if !wantReference {
		direct = s.index.references
		wantMarker = markerUDI
	}

	if pos, ok := direct[term]; ok {
		if v := extractDirect(s.index.roots[pos], wantMarker); v != "" {
			logger.Info("lookup: direct hit at position %d: %q", pos, v)
			return v
		}
		logger.Debug("lookup: direct hit at %d had no extractable value", pos)
	}

	positions := s.matchPositions(term)
	if len(positions) == 0 {
		logger.Warn("lookup: no entries for %q", term)
		return ""
	}
	logger.Debug("lookup: fallback matched %d candidate(s)", len(positions))

	for _, pos := range positions {
		if v := extractDeep(s.index.roots[pos], wantMarker, 0); v != "" {
			logger.Info("lookup: fallback hit at position %d: %q", pos, v)
			return v
		}
	}

	logger.Warn("lookup: candidates for %q carried no value", term)
	return ""
}

// matchPositions finds candidate root positions for a term: an exact
// token match when one exists, otherwise the positions under the FIRST
// token containing the term as a substring. The scan deliberately
// stops at that first token; callers depend on this cheap, partial
// behaviour, so it must not be widened to an exhaustive scan.
func (s *Searcher) matchPositions(term string) []int {
	set, ok := s.index.terms[term]
	if !ok {
		for token, candidates := range s.index.terms {
			if strings.Contains(token, term) {
				logger.Debug("lookup: substring match on token %q", token)
				set = candidates
				break
			}
		}
	}
	if len(set) == 0 {
		return nil
	}

	positions := make([]int, 0, len(set))
	for pos := range set {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}
