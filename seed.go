package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"
)

// ==== JSON input structure ====

type LessonInput struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Difficulty  string        `json:"difficulty"`
	OrderIndex  int           `json:"orderIndex"`
	XPReward    int           `json:"xpReward"`
	Content     LessonContent `json:"content"`
}

// ==== Seeder ====

// SeedFromJSON loads the lesson catalog. Accepts either a bare array or
// { "lessons": [ ... ] }. Runs in one transaction; content is validated
// before any row is written.
func SeedFromJSON(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// A wrapped object with a "lessons" key is authoritative even when the
	// list is empty; only a missing key falls back to the bare-array form.
	var wrapper struct {
		Lessons *[]LessonInput `json:"lessons"`
	}
	var arr []LessonInput

	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Lessons != nil {
		arr = *wrapper.Lessons
	} else if err := json.Unmarshal(raw, &arr); err != nil {
		return fmt.Errorf("json parse: %w", err)
	}

	seen := map[string]bool{}
	dups := []string{}
	for _, l := range arr {
		if seen[l.ID] {
			dups = append(dups, l.ID)
		}
		seen[l.ID] = true
	}
	if len(dups) > 0 {
		return fmt.Errorf("duplicate lesson IDs in JSON: %v", dups)
	}

	for _, in := range arr {
		if err := in.Content.Validate(); err != nil {
			return fmt.Errorf("lesson %s: %w", in.ID, err)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, in := range arr {
			lesson := Lesson{
				ID:          in.ID,
				Title:       in.Title,
				Description: in.Description,
				Category:    in.Category,
				Difficulty:  in.Difficulty,
				OrderIndex:  in.OrderIndex,
				Reward:      in.XPReward,
				Content:     in.Content,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&lesson).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
