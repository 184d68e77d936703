package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"npc_outfitter/pkg/api/config"
	"npc_outfitter/pkg/api/shopping"
	"npc_outfitter/pkg/core/agent"
	"npc_outfitter/pkg/core/budget"
	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/prompt"
	"npc_outfitter/pkg/core/question"
	"npc_outfitter/pkg/core/shopper"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	questions := question.NewLLMRepository(agentMgr, "shopper")
	defer questions.Close()

	// Equipment catalog backed by Postgres with pgvector
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("[FATAL] DATABASE_URL is not set")
		os.Exit(1)
	}
	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		fmt.Printf("[FATAL] Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	equipment := catalog.NewPostgresRepository(pool, questions)

	estimator := budget.NewEstimator(questions)
	outfitter := shopper.NewOutfitter(estimator, shopper.New(equipment, questions))

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Shopping endpoints
	shoppingHandler := shopping.NewHandler(outfitter)
	http.HandleFunc("/api/v1/shopping-list", shoppingHandler.HandleShoppingList)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/v1/shopping-list")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
