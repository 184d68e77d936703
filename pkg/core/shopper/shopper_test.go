package shopper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/question"
)

// scriptedQuestions answers each Ask call from a queue and records what was
// asked, so tests can assert on prompts and call counts.
type scriptedQuestions struct {
	answers  []string
	errs     []error
	calls    int
	asked    []string
	contexts []string
}

func (s *scriptedQuestions) Ask(ctx context.Context, systemPrompt, q string, opts *question.AskOptions) (string, error) {
	idx := s.calls
	s.calls++
	s.asked = append(s.asked, q)
	if opts != nil {
		s.contexts = append(s.contexts, opts.AdditionalContext)
	} else {
		s.contexts = append(s.contexts, "")
	}
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.answers) {
		return s.answers[idx], nil
	}
	return `{"itemIds": []}`, nil
}

func (s *scriptedQuestions) TranslateToEmbeddings(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not used in tests")
}

func pickAnswer(ids ...string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf(`{"itemIds": [%s], "reasoning": "fits the budget"}`, strings.Join(quoted, ", "))
}

func testCharacter() character.Character {
	return character.Character{
		FirstName:  "Mira",
		Surname:    "Tanaka",
		Role:       "bounty hunter",
		Experience: character.Veteran,
	}
}

func testCatalog() *catalog.MemoryRepository {
	return catalog.NewMemoryRepository(
		catalog.Equipment{ID: "arm-1", Section: catalog.SectionArmour, Name: "Flak Jacket", TL: 8, Price: 900},
		catalog.Equipment{ID: "arm-2", Section: catalog.SectionArmour, Name: "Combat Armour", TL: 11, Price: 8000},
		catalog.Equipment{ID: "aug-1", Section: catalog.SectionAugments, Name: "IR Goggles", TL: 9, Price: 500},
		catalog.Equipment{ID: "gun-1", Section: catalog.SectionWeapons, Subsection: "Slug Pistols", Name: "Autopistol", TL: 6, Price: 300},
		catalog.Equipment{ID: "blade-1", Section: catalog.SectionWeapons, Subsection: "Blades", Name: "Cutlass", TL: 2, Price: 200},
		catalog.Equipment{ID: "tool-1", Section: catalog.SectionTools, Name: "Toolkit", TL: 8, Price: 400},
		catalog.Equipment{ID: "com-1", Section: catalog.SectionHomeComforts, Name: "Entertainment Suite", TL: 9, Price: 1000},
	)
}

func TestZeroBudgetSkipsRetrievalAndModel(t *testing.T) {
	repo := testCatalog()
	repo.FailWith = "should not be called"
	questions := &scriptedQuestions{}
	s := New(repo, questions)

	res := s.SuggestTools(context.Background(), testCharacter(), 0)
	search, serr := res.Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if search.Found {
		t.Fatal("expected not-found for zero budget")
	}
	if questions.calls != 0 {
		t.Fatalf("expected no model calls, got %d", questions.calls)
	}
}

func TestUnknownItemIDsAreDropped(t *testing.T) {
	questions := &scriptedQuestions{answers: []string{pickAnswer("tool-1", "ghost-99")}}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestTools(context.Background(), testCharacter(), 1000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !search.Found {
		t.Fatal("expected a found result")
	}
	if len(search.Result) != 1 || search.Result[0].ID != "tool-1" {
		t.Fatalf("expected only tool-1 to survive, got %+v", search.Result)
	}
}

func TestArmourSurvivesAugmentFailure(t *testing.T) {
	questions := &scriptedQuestions{
		answers: []string{pickAnswer("arm-1"), ""},
		errs:    []error{nil, errors.New("model timeout")},
	}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestArmour(context.Background(), testCharacter(), 2000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !search.Found {
		t.Fatal("expected armour to be found despite augment failure")
	}
	if search.Result.Armour.ID != "arm-1" {
		t.Fatalf("expected arm-1, got %q", search.Result.Armour.ID)
	}
	if len(search.Result.Augments) != 0 {
		t.Fatalf("expected no augments after failure, got %+v", search.Result.Augments)
	}
}

func TestArmourAugmentsBuyFromRemainder(t *testing.T) {
	questions := &scriptedQuestions{answers: []string{pickAnswer("arm-1"), pickAnswer("aug-1")}}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestArmour(context.Background(), testCharacter(), 2000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !search.Found {
		t.Fatal("expected a found result")
	}
	if len(search.Result.Augments) != 1 || search.Result.Augments[0].ID != "aug-1" {
		t.Fatalf("expected aug-1 augment, got %+v", search.Result.Augments)
	}
	// The augment round must state the post-armour budget: 2000 - 900.
	if !strings.Contains(questions.asked[1], "Cr1,100") {
		t.Fatalf("expected augment question to carry remaining budget, got %q", questions.asked[1])
	}
}

func TestWeaponsMeleeOnlyWhenRangedFails(t *testing.T) {
	questions := &scriptedQuestions{
		answers: []string{"", pickAnswer("blade-1")},
		errs:    []error{errors.New("model timeout"), nil},
	}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestWeapons(context.Background(), testCharacter(), 1000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !search.Found {
		t.Fatal("expected melee pick to keep the category found")
	}
	if len(search.Result) != 1 || search.Result[0].ID != "blade-1" {
		t.Fatalf("expected only blade-1, got %+v", search.Result)
	}
}

func TestWeaponsNotFoundWhenBothSubShopsEmpty(t *testing.T) {
	questions := &scriptedQuestions{answers: []string{pickAnswer(), pickAnswer()}}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestWeapons(context.Background(), testCharacter(), 1000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if search.Found {
		t.Fatalf("expected not-found, got %+v", search.Result)
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	repo := testCatalog()
	repo.FailWith = "connection refused"
	s := New(repo, &scriptedQuestions{})

	_, serr := s.SuggestCommodities(context.Background(), testCharacter(), 1000).Unpack()
	if serr == nil {
		t.Fatal("expected backing-store failure to propagate")
	}
	if serr.Message != "connection refused" {
		t.Fatalf("unexpected message %q", serr.Message)
	}
}

func TestCandidatesRespectBudgetCeiling(t *testing.T) {
	questions := &scriptedQuestions{answers: []string{pickAnswer("arm-1")}}
	s := New(testCatalog(), questions)

	search, serr := s.SuggestArmour(context.Background(), testCharacter(), 1000).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if !search.Found {
		t.Fatal("expected a found result")
	}
	// Combat Armour at Cr8,000 is over budget and must not reach the model.
	if strings.Contains(questions.contexts[0], "Combat Armour") {
		t.Fatal("over-budget candidate leaked into the model context")
	}
	if !strings.Contains(questions.contexts[0], "Flak Jacket") {
		t.Fatal("affordable candidate missing from the model context")
	}
}
