package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// snapshotListLimit bounds how many revisions :snapshots shows.
const snapshotListLimit = 5

// ErrNoStorage is returned by snapshot commands when no database is open.
var ErrNoStorage = errors.New("snapshot storage is unavailable")

func registerSnapshotCommands(api AppAPI) {
	register(api, "snapshot", func(args []string) error {
		label := strings.Join(args, " ")
		if label == "" {
			label = "manual"
		}
		snap, saved, err := api.SaveSnapshot(label)
		if err != nil {
			return err
		}
		if !saved {
			api.SetStatusMessage("No changes since snapshot #%d", snap.ID)
			return nil
		}
		api.SetStatusMessage("Saved snapshot #%d (%d object(s))", snap.ID, snap.ObjectCount)
		return nil
	})

	register(api, "snapshots", func([]string) error {
		store := api.Snapshots()
		if store == nil {
			return ErrNoStorage
		}
		list, err := store.List(context.Background(), api.SnapshotName(), snapshotListLimit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			api.SetStatusMessage("No snapshots for %s", api.SnapshotName())
			return nil
		}
		parts := make([]string, len(list))
		for i, s := range list {
			parts[i] = fmt.Sprintf("#%d %s %s", s.ID, s.Label, s.CreatedAt.Local().Format(time.TimeOnly))
		}
		api.SetStatusMessage("Snapshots: %s", strings.Join(parts, ", "))
		return nil
	})

	register(api, "restore", func(args []string) error {
		store := api.Snapshots()
		if store == nil {
			return ErrNoStorage
		}
		if len(args) != 1 {
			return errors.New("usage: restore <id>")
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(args[0], "#"), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snapshot id '%s'", args[0])
		}
		snap, doc, err := store.Load(context.Background(), uint(id))
		if err != nil {
			return err
		}
		ed := api.Editor()
		if err := ed.LoadDocument(doc); err != nil {
			return err
		}
		// The canvas no longer matches the file on disk.
		ed.SetModified(true)
		api.SetStatusMessage("Restored snapshot #%d (%s)", snap.ID, snap.Label)
		return nil
	})
}
