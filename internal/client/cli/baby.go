package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"babysteps/internal/models"
)

// AddBaby interactively creates a baby, stores it locally, and pushes it to
// the server through the ensure cascade.
func (a *App) AddBaby(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Baby name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		printlnFn("Name cannot be empty")
		return nil
	}

	birthDate, err := GetDate(a.reader, "Birth date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	weight, err := GetFloat(a.reader, "Birth weight in grams (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	height, err := GetFloat(a.reader, "Birth height in cm (optional)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	baby := models.Baby{
		ID:          uuid.NewString(),
		Name:        name,
		BirthDate:   birthDate,
		WeightGrams: weight,
		HeightCm:    height,
	}

	a.store.UpsertBaby(baby)
	if err := a.local.SaveCurrentBaby(ctx, baby.ID); err != nil {
		a.logger.Error(ctx, "persisting baby selection", "error", err)
	}

	if err := a.adapter.EnsureBabyExists(ctx, baby); err != nil {
		printlnFn("Saved locally; server sync pending:", err.Error())
		return nil
	}

	printlnFn(fmt.Sprintf("Added %s", baby.Name))
	return nil
}

// SelectBaby switches the active baby.
func (a *App) SelectBaby(ctx context.Context) error {
	babies := a.store.Babies()
	if len(babies) == 0 {
		printlnFn("No babies yet; use 'baby' to add one")
		return nil
	}

	for i, b := range babies {
		printlnFn(fmt.Sprintf("%d) %s", i+1, b.Name))
	}

	choice, err := GetFloat(a.reader, "Pick a number", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	idx := int(choice) - 1
	if idx < 0 || idx >= len(babies) {
		printlnFn("No such baby")
		return nil
	}

	a.store.SelectBaby(babies[idx].ID)
	if err := a.local.SaveCurrentBaby(ctx, babies[idx].ID); err != nil {
		a.logger.Error(ctx, "persisting baby selection", "error", err)
	}

	printlnFn(fmt.Sprintf("Now tracking %s", babies[idx].Name))
	return nil
}
