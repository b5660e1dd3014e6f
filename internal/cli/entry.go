package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/daybookapp/daybook/internal/diary"
	"github.com/daybookapp/daybook/internal/mediax"
	"github.com/daybookapp/daybook/internal/models"
)

// nowFn is a test seam for the entry creation clock.
var nowFn = time.Now

// NewEntry composes a diary entry interactively and appends it to the
// collection. An optional image path is copied into the media directory
// before the entry is written, so a persisted entry never references a file
// outside the data directory.
func (a *App) NewEntry(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "Write your entry", os.Stdout)
	if err != nil {
		return err
	}

	imagePath, err := getSimpleText(a.reader, "Attach an image? (path, or leave empty)", os.Stdout)
	if err != nil {
		return err
	}

	var imageRef string
	if imagePath != "" {
		imageRef, err = a.importer.Import(ctx, imagePath)
		if err != nil {
			if errors.Is(err, mediax.ErrUnsupportedMedia) {
				printlnFn("That file type is not supported, saving the entry without it.")
			} else {
				printlnFn("Could not attach the image:", err.Error())
			}
			imageRef = ""
		}
	}

	if err := a.beginWrite(); err != nil {
		printlnFn("Still saving the previous entry, try again in a moment.")
		return err
	}
	defer a.endWrite()

	entry := models.NewEntry(title, text, imageRef, nowFn())
	if err := a.entries.Append(ctx, entry); err != nil {
		printlnFn("Could not save the entry:", err.Error())
		return err
	}

	printlnFn("Saved.")
	return nil
}

// List prints the collection newest-first.
func (a *App) List(ctx context.Context) error {
	entries, err := a.entries.ListAll(ctx)
	if err != nil {
		printlnFn("Could not read the diary:", err.Error())
		return err
	}
	if len(entries) == 0 {
		printlnFn("Your diary is empty. Type 'new' to write the first entry.")
		return nil
	}

	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

// Calendar prints the collection grouped by day, most recent day first.
func (a *App) Calendar(ctx context.Context) error {
	entries, err := a.entries.ListAll(ctx)
	if err != nil {
		printlnFn("Could not read the diary:", err.Error())
		return err
	}
	if len(entries) == 0 {
		printlnFn("Your diary is empty.")
		return nil
	}

	grouped := diary.GroupByDate(entries)

	days := make([]string, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	for _, day := range days {
		printlnFn(fmt.Sprintf("== %s ==", day))
		for _, e := range grouped[day] {
			printEntry(e)
		}
	}
	return nil
}

// Featured prints a random selection of past entries, the configured count
// at most.
func (a *App) Featured(ctx context.Context) error {
	entries, err := a.entries.ListAll(ctx)
	if err != nil {
		printlnFn("Could not read the diary:", err.Error())
		return err
	}
	if len(entries) == 0 {
		printlnFn("Nothing to feature yet.")
		return nil
	}

	picked := diary.PickRandom(entries, a.config.FeaturedCount)
	for _, e := range diary.SortedByRecency(picked, diary.SortByTimestamp) {
		printEntry(e)
	}
	return nil
}

func printEntry(e models.DiaryEntry) {
	printlnFn(fmt.Sprintf("[%s] %s", e.Timestamp, e.Title))
	if e.Text != "" {
		printlnFn("  " + e.Text)
	}
	if e.Image != "" {
		printlnFn("  (image: " + mediax.Path(e.Image) + ")")
	}
}
