package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/shinyyama/skillswap-backend/internal/config"
	"github.com/shinyyama/skillswap-backend/internal/db"
	"github.com/shinyyama/skillswap-backend/internal/model"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	log "github.com/sirupsen/logrus"
)

type demoSkill struct {
	Title       string
	Description string
	Category    string
	Level       model.SkillLevel
	Type        model.SkillType
}

type demoUser struct {
	ID        string
	FirstName string
	LastName  string
	Location  string
	Skills    []demoSkill
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(gdb)
	userRepo := repository.NewUserRepository(gdb)
	skillRepo := repository.NewSkillRepository(gdb)

	if _, err := categoryRepo.SeedDefaults(ctx, false); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	cats, err := categoryRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	catIDs := make(map[string]uint64, len(cats))
	for _, c := range cats {
		catIDs[c.Name] = c.ID
	}

	inserted, skipped := 0, 0
	for _, du := range demoUsers() {
		u := &model.User{
			ID:        du.ID,
			FirstName: strPtr(du.FirstName),
			LastName:  strPtr(du.LastName),
			Location:  strPtr(du.Location),
		}
		if err := userRepo.Upsert(ctx, u); err != nil {
			return fmt.Errorf("upsert user %s: %w", du.ID, err)
		}

		existing, err := skillRepo.ListByUser(ctx, du.ID)
		if err != nil {
			return fmt.Errorf("list skills for %s: %w", du.ID, err)
		}
		have := make(map[string]bool, len(existing))
		for _, s := range existing {
			have[s.Title] = true
		}

		for _, ds := range du.Skills {
			if have[ds.Title] {
				skipped++
				continue
			}
			s := &model.Skill{
				UserID:      du.ID,
				Title:       ds.Title,
				Description: ds.Description,
				Level:       ds.Level,
				Type:        ds.Type,
				IsActive:    true,
			}
			if id, ok := catIDs[ds.Category]; ok {
				s.CategoryID = &id
			}
			if err := skillRepo.Create(ctx, s); err != nil {
				return fmt.Errorf("create skill %q: %w", ds.Title, err)
			}
			inserted++
		}
	}

	log.Printf("demo skills inserted=%d skipped=%d", inserted, skipped)
	return nil
}

func strPtr(s string) *string {
	return &s
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			ID: "demo-ada", FirstName: "Ada", LastName: "Park", Location: "Seoul",
			Skills: []demoSkill{
				{"Go for backend developers", "Hands-on sessions building REST services in Go.", "Programming", model.SkillLevelAdvanced, model.SkillTypeTeach},
				{"Jazz guitar", "Looking for someone to walk me through comping and chord melody.", "Music", model.SkillLevelBeginner, model.SkillTypeLearn},
			},
		},
		{
			ID: "demo-luca", FirstName: "Luca", LastName: "Bianchi", Location: "Milan",
			Skills: []demoSkill{
				{"Guitar", "Acoustic and electric guitar basics, from first chords to simple songs.", "Music", model.SkillLevelBeginner, model.SkillTypeTeach},
				{"Italian conversation", "Relaxed conversation practice for intermediate speakers.", "Languages", model.SkillLevelIntermediate, model.SkillTypeTeach},
				{"Portrait photography", "Want to learn lighting for portraits.", "Photography", model.SkillLevelBeginner, model.SkillTypeLearn},
			},
		},
		{
			ID: "demo-maya", FirstName: "Maya", LastName: "Singh", Location: "Toronto",
			Skills: []demoSkill{
				{"UI design with Figma", "Component libraries, auto layout and prototyping.", "Design", model.SkillLevelIntermediate, model.SkillTypeTeach},
				{"Home cooking: curries", "Weeknight curries from scratch.", "Cooking", model.SkillLevelIntermediate, model.SkillTypeTeach},
				{"Strength training", "Need help putting together a beginner program.", "Fitness", model.SkillLevelBeginner, model.SkillTypeLearn},
			},
		},
	}
}
