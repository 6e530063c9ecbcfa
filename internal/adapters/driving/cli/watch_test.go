package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTrigger(t *testing.T) {
	recipeFile := filepath.Join("/models", "recipes.toml")
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"morphology created", fsnotify.Event{Name: "/models/GGN.morph.cell.nml", Op: fsnotify.Create}, true},
		{"morphology written", fsnotify.Event{Name: "/models/GGN.morph.cell.nml", Op: fsnotify.Write}, true},
		{"morphology renamed", fsnotify.Event{Name: "/models/GGN.morph.cell.nml", Op: fsnotify.Rename}, true},
		{"recipe file written", fsnotify.Event{Name: "/models/recipes.toml", Op: fsnotify.Write}, true},
		{"output written", fsnotify.Event{Name: "/models/GGN.cell.nml", Op: fsnotify.Write}, false},
		{"channel written", fsnotify.Event{Name: "/models/HH_example_na_channel.nml", Op: fsnotify.Create}, false},
		{"morphology removed", fsnotify.Event{Name: "/models/GGN.morph.cell.nml", Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: "/models/GGN.morph.cell.nml", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "/models/.GGN.morph.cell.nml", Op: fsnotify.Write}, false},
		{"other toml", fsnotify.Event{Name: "/models/nmlcell.toml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchTrigger(tt.ev, recipeFile))
		})
	}
}

func TestWatchTrigger_NoRecipeFile(t *testing.T) {
	ev := fsnotify.Event{Name: "/models/recipes.toml", Op: fsnotify.Write}
	assert.False(t, watchTrigger(ev, ""))
}

func TestWatchLoop_Debounces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	fired := make(chan fsnotify.Event, 4)

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, 50*time.Millisecond, "", func(ev fsnotify.Event) {
			fired <- ev
		})
	}()

	events <- fsnotify.Event{Name: "/m/A.morph.cell.nml", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "/m/A.cell.nml", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/m/A.morph.cell.nml", Op: fsnotify.Write}
	errs <- errors.New("overflow")

	select {
	case ev := <-fired:
		assert.Equal(t, fsnotify.Write, ev.Op)
		assert.Equal(t, "/m/A.morph.cell.nml", ev.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced event never fired")
	}
	assert.Empty(t, fired)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchLoop_ClosedEvents(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)

	err := watchLoop(context.Background(), events, nil, time.Millisecond, "", func(fsnotify.Event) {
		t.Fatal("fired on closed channel")
	})

	assert.NoError(t, err)
}

func TestWatchCmd_RequiresWorkdir(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	app.Workdir = ""

	_, err := execute("watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "work directory not configured")
}

func TestWatchCmd_HasDebounceFlag(t *testing.T) {
	flag := watchCmd.Flags().Lookup("debounce")
	require.NotNil(t, flag)
	assert.Equal(t, "300ms", flag.DefValue)
}
