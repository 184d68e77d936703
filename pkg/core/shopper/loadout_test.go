package shopper

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"npc_outfitter/pkg/core/budget"
	"npc_outfitter/pkg/core/character"
)

const splitAnswer = `{"armour": 2000, "weapons": 1000, "tools": 500, "commodities": 1000, "reasoning": "a hunter needs protection first"}`

func loadoutCharacter() character.Character {
	c := testCharacter()
	c.Characteristics.SOC = 8
	c.Skills = []string{"Gun Combat", "Recon"}
	return c
}

func TestSuggestLoadoutFullRun(t *testing.T) {
	questions := &scriptedQuestions{answers: []string{
		splitAnswer,
		pickAnswer("arm-1"),
		pickAnswer("aug-1"),
		pickAnswer("gun-1"),
		pickAnswer("blade-1"),
		pickAnswer("tool-1"),
		pickAnswer("com-1"),
	}}
	estimator := budget.NewEstimatorWithRand(questions, rand.New(rand.NewSource(7)))
	o := NewOutfitter(estimator, New(testCatalog(), questions))

	loadout, serr := o.SuggestLoadout(context.Background(), loadoutCharacter()).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}

	if loadout.Budget.Armour != 2000 || loadout.Budget.Commodities != 1000 {
		t.Fatalf("category split not carried over: %+v", loadout.Budget)
	}
	if loadout.Armour == nil || loadout.Armour.Armour.ID != "arm-1" {
		t.Fatalf("expected arm-1 armour, got %+v", loadout.Armour)
	}
	if len(loadout.Armour.Augments) != 1 {
		t.Fatalf("expected one augment, got %+v", loadout.Armour.Augments)
	}
	if len(loadout.Weapons) != 2 {
		t.Fatalf("expected firearm plus blade, got %+v", loadout.Weapons)
	}
	want := 900 + 500 + 300 + 200 + 400 + 1000
	if got := loadout.TotalSpent(); got != want {
		t.Fatalf("TotalSpent = %d, want %d", got, want)
	}

	md := loadout.Markdown(loadoutCharacter())
	for _, fragment := range []string{"# Loadout for Mira Tanaka", "Flak Jacket", "Cutlass", "Total spent: Cr3,300"} {
		if !strings.Contains(md, fragment) {
			t.Fatalf("markdown report missing %q:\n%s", fragment, md)
		}
	}
}

func TestSuggestLoadoutFailsOnlyOnEstimation(t *testing.T) {
	questions := &scriptedQuestions{errs: []error{errors.New("model down")}}
	estimator := budget.NewEstimatorWithRand(questions, rand.New(rand.NewSource(7)))
	o := NewOutfitter(estimator, New(testCatalog(), questions))

	_, serr := o.SuggestLoadout(context.Background(), loadoutCharacter()).Unpack()
	if serr == nil {
		t.Fatal("expected estimation failure to fail the whole flow")
	}
}

func TestSuggestLoadoutToleratesCategoryFailure(t *testing.T) {
	questions := &scriptedQuestions{
		answers: []string{splitAnswer, pickAnswer("arm-1"), pickAnswer(), pickAnswer("gun-1"), pickAnswer("blade-1"), pickAnswer("tool-1"), ""},
		errs:    []error{nil, nil, nil, nil, nil, nil, errors.New("model down")},
	}
	estimator := budget.NewEstimatorWithRand(questions, rand.New(rand.NewSource(7)))
	o := NewOutfitter(estimator, New(testCatalog(), questions))

	loadout, serr := o.SuggestLoadout(context.Background(), loadoutCharacter()).Unpack()
	if serr != nil {
		t.Fatalf("unexpected error: %v", serr)
	}
	if len(loadout.Commodities) != 0 {
		t.Fatalf("expected empty commodities after failure, got %+v", loadout.Commodities)
	}
	if loadout.Armour == nil || len(loadout.Tools) != 1 {
		t.Fatal("other categories should survive a commodity failure")
	}
}
