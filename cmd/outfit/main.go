package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"npc_outfitter/pkg/core/agent"
	"npc_outfitter/pkg/core/budget"
	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/prompt"
	"npc_outfitter/pkg/core/question"
	"npc_outfitter/pkg/core/shopper"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// outfit suggests a full equipment loadout for one character sheet and
// prints the report to stdout.
//
// Usage: outfit -character npc.json [-json]
func main() {
	characterPath := flag.String("character", "", "path to a character sheet JSON file")
	asJSON := flag.Bool("json", false, "print the raw loadout as JSON instead of a report")
	flag.Parse()

	if *characterPath == "" {
		fmt.Println("Usage: outfit -character <file.json> [-json]")
		os.Exit(1)
	}

	godotenv.Load()

	sheet, err := os.ReadFile(*characterPath)
	if err != nil {
		fmt.Printf("[FATAL] Failed to read character sheet: %v\n", err)
		os.Exit(1)
	}
	var c character.Character
	if err := json.Unmarshal(sheet, &c); err != nil {
		fmt.Printf("[FATAL] Failed to parse character sheet: %v\n", err)
		os.Exit(1)
	}
	if !c.Experience.Valid() {
		fmt.Printf("[WARNING] Unknown experience %q, treating as regular\n", c.Experience)
	}

	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
	}

	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	questions := question.NewLLMRepository(agentMgr, "shopper")
	defer questions.Close()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("[FATAL] DATABASE_URL is not set")
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Printf("[FATAL] Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	equipment := catalog.NewPostgresRepository(pool, questions)
	estimator := budget.NewEstimator(questions)
	outfitter := shopper.NewOutfitter(estimator, shopper.New(equipment, questions))

	loadout, serr := outfitter.SuggestLoadout(ctx, c).Unpack()
	if serr != nil {
		fmt.Printf("[FATAL] Loadout suggestion failed: %s (%s)\n", serr.Message, serr.Context)
		os.Exit(1)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(loadout, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Println(loadout.Markdown(c))
}
