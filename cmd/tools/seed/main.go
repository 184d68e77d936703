package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"npc_outfitter/pkg/core/agent"
	"npc_outfitter/pkg/core/catalog"
	"npc_outfitter/pkg/core/character"
	"npc_outfitter/pkg/core/question"
	"npc_outfitter/pkg/core/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const schemaDDL = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS equipment (
	id          TEXT PRIMARY KEY,
	section     TEXT NOT NULL,
	subsection  TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL,
	tl          INT NOT NULL DEFAULT 0,
	mass        DOUBLE PRECISION NOT NULL DEFAULT 0,
	price       INT NOT NULL DEFAULT 0,
	ammo_price  INT NOT NULL DEFAULT 0,
	species     TEXT NOT NULL DEFAULT '',
	skill       TEXT NOT NULL DEFAULT '',
	book        TEXT NOT NULL DEFAULT '',
	page        INT NOT NULL DEFAULT 0,
	contraband  INT NOT NULL DEFAULT 0,
	category    TEXT NOT NULL DEFAULT '',
	law         INT,
	notes       TEXT NOT NULL DEFAULT '',
	mod         TEXT NOT NULL DEFAULT '',
	needs       JSONB NOT NULL DEFAULT '[]',
	embedding   vector(768),
	UNIQUE (section, subsection, name)
);
`

// seed loads the equipment catalog from a CSV export or an HTML table dump,
// optionally asks the model to tag each item with the needs it fulfills,
// embeds every item card and upserts the rows into Postgres.
//
// Usage: seed -csv equipment.csv [-tag-needs] [-create-schema]
func main() {
	csvPath := flag.String("csv", "", "path to an equipment CSV export")
	htmlPath := flag.String("html", "", "path to an equipment HTML table dump")
	tagNeeds := flag.Bool("tag-needs", false, "ask the model to tag items with the needs they fulfill")
	createSchema := flag.Bool("create-schema", false, "create the equipment table before seeding")
	flag.Parse()

	if *csvPath == "" && *htmlPath == "" {
		log.Fatal("Error: one of -csv or -html is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("Error: DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Error: failed to connect to database: %v", err)
	}
	defer pool.Close()

	if *createSchema {
		fmt.Println("Step 0: Creating equipment schema...")
		if _, err := pool.Exec(ctx, schemaDDL); err != nil {
			log.Fatalf("Error: schema creation failed: %v", err)
		}
	}

	// 1. Load rows
	var items []catalog.Equipment
	if *csvPath != "" {
		fmt.Printf("Step 1: Reading CSV %s...\n", *csvPath)
		items, err = readCSV(*csvPath)
	} else {
		fmt.Printf("Step 1: Reading HTML %s...\n", *htmlPath)
		items, err = readHTML(*htmlPath)
	}
	if err != nil {
		log.Fatalf("Error: failed to read equipment data: %v", err)
	}
	fmt.Printf("Loaded %d equipment rows\n", len(items))

	// 2. Model-assisted needs tagging
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	questions := question.NewLLMRepository(agent.NewManager(agentCfg), "seed")
	defer questions.Close()

	if *tagNeeds {
		fmt.Println("Step 2: Tagging items with needs...")
		for i := range items {
			tags, err := tagItemNeeds(ctx, questions, items[i])
			if err != nil {
				fmt.Printf("[WARNING] needs tagging failed for %q: %v\n", items[i].Name, err)
				continue
			}
			items[i].Needs = tags
		}
	}

	// 3. Embed and upsert
	fmt.Println("Step 3: Embedding and upserting rows...")
	seeded := 0
	for _, item := range items {
		vector, err := questions.TranslateToEmbeddings(ctx, item.IndexDocument())
		if err != nil {
			log.Fatalf("Error: embedding failed for %q: %v", item.Name, err)
		}
		if err := upsert(ctx, pool, item, vector); err != nil {
			log.Fatalf("Error: upsert failed for %q: %v", item.Name, err)
		}
		seeded++
		if seeded%50 == 0 {
			fmt.Printf("  %d/%d rows seeded\n", seeded, len(items))
		}
	}
	fmt.Printf("Done: %d equipment rows seeded\n", seeded)
}

// csv columns, in the order the source export uses.
var csvHeader = []string{
	"section", "subsection", "name", "tl", "mass", "price", "ammo_price",
	"species", "skill", "book", "page", "contraband", "category", "law",
	"notes", "mod",
}

func readCSV(path string) ([]catalog.Equipment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], col)
		}
	}

	var items []catalog.Equipment
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, rowToEquipment(record))
	}
	return items, nil
}

// readHTML extracts equipment rows from an HTML dump whose tables follow
// the same column order as the CSV export. Each table's caption (or the
// nearest preceding heading) names the section.
func readHTML(path string) ([]catalog.Equipment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	var items []catalog.Equipment
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		section := strings.TrimSpace(table.Find("caption").Text())
		if section == "" {
			section = strings.TrimSpace(table.PrevAllFiltered("h2, h3").First().Text())
		}
		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			record := make([]string, 0, len(csvHeader))
			record = append(record, section)
			row.Find("td").Each(func(_ int, cell *goquery.Selection) {
				record = append(record, strings.TrimSpace(cell.Text()))
			})
			if len(record) != len(csvHeader) {
				return
			}
			items = append(items, rowToEquipment(record))
		})
	})
	return items, nil
}

func rowToEquipment(record []string) catalog.Equipment {
	e := catalog.Equipment{
		ID:         uuid.NewString(),
		Section:    record[0],
		Subsection: record[1],
		Name:       record[2],
		TL:         atoi(record[3]),
		Mass:       atof(record[4]),
		Price:      atoi(record[5]),
		AmmoPrice:  atoi(record[6]),
		Species:    record[7],
		Skill:      record[8],
		Book:       record[9],
		Page:       atoi(record[10]),
		Contraband: atoi(record[11]),
		Category:   record[12],
		Notes:      record[14],
		Mod:        record[15],
	}
	if law := strings.TrimSpace(record[13]); law != "" && law != "-" {
		v := atoi(law)
		e.Law = &v
	}
	return e
}

func atoi(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	return v
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// tagItemNeeds asks the model which functional needs the item fulfills.
// Model output here is parsed leniently: this is offline tooling and a
// repairable answer is better than a retry.
func tagItemNeeds(ctx context.Context, questions question.Repository, item catalog.Equipment) ([]catalog.NeedTag, error) {
	q := fmt.Sprintf(
		"Given this equipment item:\n%s\n\nWhich of these needs does it fulfill: %s?\nAnswer with a JSON array of {\"need\": string, \"weight\": number} objects, weight from 1 to 10, at most three entries.",
		item.IndexDocument(), strings.Join(needNames(), ", "))

	raw, err := questions.Ask(ctx, "You classify tabletop RPG equipment by the functional needs it serves.", q, nil)
	if err != nil {
		return nil, err
	}

	var tags []catalog.NeedTag
	if _, err := utils.SmartParse(utils.CleanMarkdown(raw), &tags); err != nil {
		return nil, err
	}

	valid := tags[:0]
	for _, tag := range tags {
		if !character.IsValidNeed(tag.Need) || !character.IsValidNeedWeight(tag.Weight) {
			fmt.Printf("[WARNING] dropping invalid need tag %+v for %q\n", tag, item.Name)
			continue
		}
		valid = append(valid, tag)
	}
	return valid, nil
}

func needNames() []string {
	names := make([]string, len(character.Needs))
	for i, need := range character.Needs {
		names[i] = string(need)
	}
	return names
}

func upsert(ctx context.Context, pool *pgxpool.Pool, item catalog.Equipment, vector []float32) error {
	needsJSON, err := json.Marshal(item.Needs)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO equipment (
			id, section, subsection, name, tl, mass, price, ammo_price,
			species, skill, book, page, contraband, category, law, notes,
			mod, needs, embedding
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19::vector
		)
		ON CONFLICT (section, subsection, name) DO UPDATE SET
			tl = EXCLUDED.tl, mass = EXCLUDED.mass, price = EXCLUDED.price,
			ammo_price = EXCLUDED.ammo_price, species = EXCLUDED.species,
			skill = EXCLUDED.skill, book = EXCLUDED.book, page = EXCLUDED.page,
			contraband = EXCLUDED.contraband, category = EXCLUDED.category,
			law = EXCLUDED.law, notes = EXCLUDED.notes, mod = EXCLUDED.mod,
			needs = EXCLUDED.needs, embedding = EXCLUDED.embedding
	`,
		item.ID, item.Section, item.Subsection, item.Name, item.TL, item.Mass,
		item.Price, item.AmmoPrice, item.Species, item.Skill, item.Book,
		item.Page, item.Contraband, item.Category, item.Law, item.Notes,
		item.Mod, needsJSON, catalog.VectorLiteral(vector))
	return err
}
