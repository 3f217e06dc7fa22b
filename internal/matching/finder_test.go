// internal/matching/finder_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigmatch-workers/internal/models"
)

func repWithExperience(id string, years float64) models.RepProfile {
	r := *testRep()
	r.ID = id
	r.YearsExperience = years
	return r
}

func gigRequiringExperience(id string, years float64) models.GigPosting {
	g := *testGig()
	g.ID = id
	g.RequiredExperience = years
	return g
}

// experience-only weights make expected scores easy to state exactly
var experienceOnly = Weights{Experience: 1.0}

func TestMatchesForGig_RanksDescending(t *testing.T) {
	gig := gigRequiringExperience("gig-1", 10)
	reps := []models.RepProfile{
		repWithExperience("rep-low", 4),   // 0.32
		repWithExperience("rep-high", 12), // 0.88
		repWithExperience("rep-mid", 10),  // 0.80
	}

	finder := NewFinder(nil, experienceOnly)
	results := finder.MatchesForGig(&gig, reps, 0)

	assert.Len(t, results, 3)
	assert.Equal(t, "rep-high", results[0].RepID)
	assert.Equal(t, "rep-mid", results[1].RepID)
	assert.Equal(t, "rep-low", results[2].RepID)
	assert.InDelta(t, 0.88, results[0].Score, 1e-9)
}

func TestMatchesForGig_TruncatesToLimit(t *testing.T) {
	gig := gigRequiringExperience("gig-1", 10)
	var reps []models.RepProfile
	for i := 0; i < 25; i++ {
		reps = append(reps, repWithExperience("rep", float64(i)))
	}

	finder := NewFinder(nil, experienceOnly)

	assert.Len(t, finder.MatchesForGig(&gig, reps, 5), 5)
	// limit <= 0 falls back to the default
	assert.Len(t, finder.MatchesForGig(&gig, reps, 0), DefaultLimit)
	assert.Len(t, finder.MatchesForGig(&gig, reps, -1), DefaultLimit)
}

func TestMatchesForGig_StableTieOrder(t *testing.T) {
	gig := gigRequiringExperience("gig-1", 10)
	reps := []models.RepProfile{
		repWithExperience("rep-a", 5),
		repWithExperience("rep-b", 5),
		repWithExperience("rep-c", 5),
		repWithExperience("rep-d", 20),
	}

	finder := NewFinder(nil, experienceOnly)
	results := finder.MatchesForGig(&gig, reps, 0)

	// tied candidates keep their input order behind the clear winner
	assert.Equal(t, "rep-d", results[0].RepID)
	assert.Equal(t, "rep-a", results[1].RepID)
	assert.Equal(t, "rep-b", results[2].RepID)
	assert.Equal(t, "rep-c", results[3].RepID)
}

func TestMatchesForGig_Deterministic(t *testing.T) {
	gig := *testGig()
	reps := []models.RepProfile{
		repWithExperience("rep-1", 3),
		repWithExperience("rep-2", 8),
		repWithExperience("rep-3", 8),
		repWithExperience("rep-4", 1),
	}

	finder := NewFinder(OverlapPolicy{}, DefaultWeights())

	first := finder.MatchesForGig(&gig, reps, 0)
	second := finder.MatchesForGig(&gig, reps, 0)
	assert.Equal(t, first, second)
}

func TestGigsForRep_Symmetric(t *testing.T) {
	rep := repWithExperience("rep-1", 10)
	gigs := []models.GigPosting{
		gigRequiringExperience("gig-easy", 2),   // min(1, 0.8+8*0.04) = 1.0
		gigRequiringExperience("gig-senior", 20), // 0.4
		gigRequiringExperience("gig-peer", 10),  // 0.8
	}

	finder := NewFinder(nil, experienceOnly)
	results := finder.GigsForRep(&rep, gigs, 0)

	assert.Len(t, results, 3)
	assert.Equal(t, "gig-easy", results[0].GigID)
	assert.Equal(t, "gig-peer", results[1].GigID)
	assert.Equal(t, "gig-senior", results[2].GigID)
	for _, r := range results {
		assert.Equal(t, "rep-1", r.RepID)
	}
}

func TestMatchesForGig_EmptyPool(t *testing.T) {
	gig := *testGig()
	finder := NewFinder(nil, Weights{})
	assert.Empty(t, finder.MatchesForGig(&gig, nil, 0))
}
