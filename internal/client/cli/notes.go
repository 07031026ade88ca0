package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

func (a *App) List(ctx context.Context) error {
	notes, err := a.noteService.List(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes yet")
		return nil
	}

	for _, n := range notes {
		fmt.Fprintf(a.out, "%s  %s\n", n.ID, n.Title)
	}
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	n, err := a.noteService.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:      %s\nTitle:   %s\nCreated: %s\n\n%s\n",
		n.ID, n.Title, n.CreatedAt.Local().Format(time.DateTime), n.Body)
	return nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	body, err := getMultiline(a.reader, "Enter text", a.out)
	if err != nil {
		return err
	}

	n, err := a.noteService.Create(ctx, title, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Note created: %s\n", n.ID)
	return nil
}

// EditNote asks for a new title and body; an empty answer keeps the
// current value.
func (a *App) EditNote(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "Enter new title (empty to keep)", a.out)
	if err != nil {
		return err
	}

	body, err := getMultiline(a.reader, "Enter new text (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var changes models.NoteChanges
	if title != "" {
		changes.Title = &title
	}
	if body != "" {
		changes.Body = &body
	}
	if changes.Title == nil && changes.Body == nil {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	if _, err := a.noteService.Update(ctx, id, changes); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Note updated")
	return nil
}

func (a *App) DeleteNote(ctx context.Context, id string) error {
	ok, err := confirm(a.reader, fmt.Sprintf("Delete note %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.noteService.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

// Export seams, swapped in tests.
var (
	downloadExport  = netx.DownloadPresignedURL
	ensureExportDir = func() (string, error) { return filex.EnsureSubDir("exports") }
	now             = time.Now
)

// Export publishes the user's notes and prints the download link. With save
// set the document is also fetched into ./exports.
func (a *App) Export(ctx context.Context, save bool) error {
	link, err := a.noteService.Export(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Export ready, download link:\n%s\n", link)
	if !save {
		return nil
	}

	data, err := downloadExport(ctx, link)
	if err != nil {
		return err
	}

	dir, err := ensureExportDir()
	if err != nil {
		return err
	}

	path, err := filex.WriteFileAtomic(dir, "notes-"+now().Format("20060102-150405")+".json", data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}
