// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/models"
)

func instrumentCatalog() ([]models.Song, catalog.MoodAffinity, catalog.MoodInstrumentAffinity) {
	songs := []models.Song{
		song(1, []string{"calm"}, nil),
		song(2, []string{"sad"}, nil),
		song(3, []string{"calm", "sad"}, nil),
		song(4, nil, []string{"guitar"}),
		song(5, nil, []string{"drums"}),
		song(6, nil, []string{"piano"}),
		song(7, nil, []string{"piano"}),
	}
	moods := catalog.MoodAffinity{
		"calm": related("sad", 0.5),
		"sad":  related("calm", 0.5),
	}
	inst := catalog.MoodInstrumentAffinity{
		"calm": {"piano": 0.8, "guitar": 0.2},
		"sad":  {"piano": 0.3, "drums": 0.1},
	}
	return songs, moods, inst
}

func TestPhaseFor(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 1)

	tests := []struct {
		liked int
		want  Phase
	}{
		{0, PhaseMood},
		{2, PhaseMood},
		{3, PhaseInstrument},
		{4, PhaseInstrument},
		{5, PhaseFallback},
		{50, PhaseFallback},
	}
	for _, tt := range tests {
		if got := e.PhaseFor(tt.liked); got != tt.want {
			t.Errorf("PhaseFor(%d) = %s, want %s", tt.liked, got, tt.want)
		}
	}
}

func TestNextCandidate_PhaseDependsOnlyOnLikes(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 1)

	// Dislikes never move the phase.
	sel, err := e.NextCandidate(ledgerOf(1, false, 2, false, 3, false, 4, false))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Phase != PhaseMood || sel.LikedCount != 0 {
		t.Errorf("phase = %s liked = %d, want mood/0", sel.Phase, sel.LikedCount)
	}

	sel, err = e.NextCandidate(ledgerOf(1, true, 2, true, 3, true))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Phase != PhaseInstrument {
		t.Errorf("phase = %s, want instrument", sel.Phase)
	}
}

func TestNextCandidate_MoodPhasePicksBroadestMood(t *testing.T) {
	t.Parallel()

	songs := []models.Song{
		song(1, []string{"happy"}, nil),
		song(2, []string{"happy"}, nil),
		song(7, []string{"calm"}, nil),
	}
	moods := catalog.MoodAffinity{
		"calm":  related("sad", 0.9, "happy", 0.3, "dreamy", 0.1),
		"happy": related("calm", 0.3),
		"sad":   related("calm", 0.9, "dreamy", 0.4),
	}
	for seed := int64(0); seed < 10; seed++ {
		e := newTestEngine(t, songs, moods, nil, nil, seed)
		sel, err := e.NextCandidate(ledgerOf())
		if err != nil {
			t.Fatal(err)
		}
		// "calm" is the broadest mood with a song; "sad" is broader than
		// "happy" but has no songs.
		if sel.Song.ID != 7 || sel.Random {
			t.Fatalf("seed %d: got song %d (random=%v), want 7", seed, sel.Song.ID, sel.Random)
		}
	}
}

func TestNextCandidate_MoodPhaseSkipsSwipedMoods(t *testing.T) {
	t.Parallel()

	songs := []models.Song{
		song(1, []string{"happy"}, nil),
		song(2, []string{"happy"}, nil),
		song(7, []string{"calm", "dreamy"}, nil),
		song(8, []string{"calm"}, nil),
	}
	moods := catalog.MoodAffinity{
		"calm":  related("happy", 0.3, "sad", 0.2),
		"happy": related("calm", 0.3),
	}
	e := newTestEngine(t, songs, moods, nil, nil, 3)

	// Disliking song 7 excludes "calm" even though song 8 is still unswiped.
	sel, err := e.NextCandidate(ledgerOf(7, false))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Song.ID != 1 && sel.Song.ID != 2 {
		t.Errorf("got song %d, want a happy song", sel.Song.ID)
	}
}

func TestCandidateMoodsOrdering(t *testing.T) {
	t.Parallel()

	moods := catalog.MoodAffinity{
		"b": related("x", 1.0),
		"a": related("x", 1.0),
		"c": related("x", 1.0, "y", 0.5),
		"d": related("x", 1.0, "y", 0.5),
	}
	e := newTestEngine(t, []models.Song{song(1, []string{"a"}, nil)}, moods, nil, nil, 1)

	exclude := models.TagSet{}
	exclude.Add("d")
	got := e.CandidateMoods(exclude)
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("CandidateMoods() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CandidateMoods() = %v, want %v", got, want)
		}
	}
}

func TestInstrumentScores(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 1)

	liked := models.TagSet{}
	liked.Add("calm", "sad")
	scores := e.InstrumentScores(liked)

	if len(scores) != 3 {
		t.Fatalf("InstrumentScores() = %v, want 3 entries", scores)
	}
	if scores[0].Tag != "piano" || math.Abs(scores[0].Score-1.1) > 1e-9 {
		t.Errorf("top = %+v, want piano 1.1", scores[0])
	}
	if scores[1].Tag != "guitar" || math.Abs(scores[1].Score-0.2) > 1e-9 {
		t.Errorf("second = %+v, want guitar 0.2", scores[1])
	}
}

func TestNextCandidate_InstrumentPhaseFirstMatch(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 1)

	// Top instruments are piano (1.1) and guitar (0.2). Song 4 (guitar) is
	// the first catalog match even though piano scores higher.
	sel, err := e.NextCandidate(ledgerOf(1, true, 2, true, 3, true))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Phase != PhaseInstrument || sel.Random || sel.Song.ID != 4 {
		t.Fatalf("got %+v, want song 4 from instrument phase", sel)
	}

	// Song 5 only carries drums, which is not in the top two.
	sel, err = e.NextCandidate(ledgerOf(1, true, 2, true, 3, true, 4, true))
	if err != nil {
		t.Fatal(err)
	}
	if sel.Song.ID != 6 {
		t.Errorf("got song %d, want 6", sel.Song.ID)
	}
}

func TestNextCandidate_InstrumentPhaseFallsBackToRandom(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 1)

	sel, err := e.NextCandidate(ledgerOf(1, true, 2, true, 3, true, 4, false, 6, false, 7, false))
	if err != nil {
		t.Fatal(err)
	}
	if !sel.Random || sel.Song.ID != 5 {
		t.Errorf("got %+v, want random pick of song 5", sel)
	}
}

func TestNextCandidate_FallbackPhase(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	for seed := int64(0); seed < 20; seed++ {
		e := newTestEngine(t, songs, moods, inst, nil, seed)
		sel, err := e.NextCandidate(ledgerOf(1, true, 2, true, 3, true, 4, true, 6, true))
		if err != nil {
			t.Fatal(err)
		}
		if sel.Phase != PhaseFallback || !sel.Random {
			t.Fatalf("got phase %s random %v, want fallback", sel.Phase, sel.Random)
		}
		if sel.Song.ID != 5 && sel.Song.ID != 7 {
			t.Fatalf("got song %d, want 5 or 7", sel.Song.ID)
		}
	}
}

func TestNextCandidate_NeverRepeatsAndExhausts(t *testing.T) {
	t.Parallel()

	songs, moods, inst := instrumentCatalog()
	e := newTestEngine(t, songs, moods, inst, nil, 42)

	var swipes []interface{}
	seen := map[int]bool{}
	for i := 0; i < len(songs); i++ {
		sel, err := e.NextCandidate(ledgerOf(swipes...))
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if seen[sel.Song.ID] {
			t.Fatalf("step %d: song %d returned twice", i, sel.Song.ID)
		}
		seen[sel.Song.ID] = true
		swipes = append(swipes, sel.Song.ID, i%2 == 0)
	}

	if _, err := e.NextCandidate(ledgerOf(swipes...)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("NextCandidate() after exhaustion = %v, want ErrNotFound", err)
	}
}

func TestNextCandidate_EndToEndScenario(t *testing.T) {
	t.Parallel()

	songs := []models.Song{
		song(1, []string{"calm"}, nil),
		song(2, []string{"calm"}, nil),
		song(3, []string{"happy"}, nil),
		song(4, nil, []string{"piano"}),
		song(5, nil, []string{"guitar"}),
	}
	moods := catalog.MoodAffinity{
		"calm":  related("happy", 0.4),
		"happy": related("calm", 0.4),
	}
	inst := catalog.MoodInstrumentAffinity{"calm": {"piano": 0.9}}

	for seed := int64(0); seed < 20; seed++ {
		e := newTestEngine(t, songs, moods, inst, nil, seed)
		sel, err := e.NextCandidate(ledgerOf(1, true, 2, true, 3, false))
		if err != nil {
			t.Fatal(err)
		}
		if sel.Phase != PhaseMood {
			t.Fatalf("phase = %s, want mood with two likes", sel.Phase)
		}
		if sel.Song.ID != 4 && sel.Song.ID != 5 {
			t.Fatalf("seed %d: got song %d, want 4 or 5", seed, sel.Song.ID)
		}
	}
}

func TestLedgerDerivedSets(t *testing.T) {
	t.Parallel()

	l := ledgerOf(3, true, 1, false, 2, true, 3, true)
	if l.SwipedCount() != 3 {
		t.Errorf("SwipedCount() = %d, want 3", l.SwipedCount())
	}
	got := l.LikedIDs()
	if len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Errorf("LikedIDs() = %v, want [3 2]", got)
	}
	if !l.Swiped(1) || l.Liked(1) {
		t.Error("song 1 should be swiped but not liked")
	}
}
