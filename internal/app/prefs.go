package app

import (
	"context"
	"fmt"
	"os"
)

// displayPref resolves a display preference from the database, falling back
// when no database is configured or the flag is unreadable.
func (a *App) displayPref(ctx context.Context, name, fallback string) string {
	store, closeStore, err := a.openStore(ctx)
	if err != nil || store == nil {
		return fallback
	}
	defer closeStore()

	return store.GetPref(ctx, name, fallback)
}

// SetDisplayPref persists a display preference flag.
func (a *App) SetDisplayPref(ctx context.Context, name, value string) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("database.dsn must be configured to persist preferences")
	}
	defer closeStore()

	if err := store.SetPref(ctx, name, value); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s = %s\n", name, value)
	return nil
}

// GetDisplayPref prints a display preference flag, or its default when
// unset.
func (a *App) GetDisplayPref(ctx context.Context, name string) error {
	fmt.Fprintf(os.Stdout, "%s = %s\n", name, a.displayPref(ctx, name, ""))
	return nil
}
