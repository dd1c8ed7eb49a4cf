package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{"--data", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestProfileAndRewardCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "profile", "show")
	require.Error(t, err)

	out, err := run(t, dir, "profile", "init", "--name", "Lan", "--email", "lan@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "welcome, Lan")

	out, err = run(t, dir, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "trees: 0")
	assert.Contains(t, out, "reward: locked")

	_, err = run(t, dir, "reward", "claim")
	assert.Error(t, err)
}

func TestScheduleCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "schedule", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "no schedule")

	out, err = run(t, dir, "schedule", "set", "--start", "09:00", "--end", "11:30", "--days", "mon,wed")
	require.NoError(t, err)
	assert.Contains(t, out, "09:00-11:30 mon,wed")

	_, err = run(t, dir, "schedule", "set", "--start", "25:00", "--end", "11:30", "--days", "mon")
	assert.Error(t, err)

	out, err = run(t, dir, "schedule", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "schedule cleared")
}

func TestThemeAndHistoryCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "theme: dark")

	out, err = run(t, dir, "theme", "light")
	require.NoError(t, err)
	assert.Contains(t, out, "theme: light")

	out, err = run(t, dir, "session", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions")

	_, err = run(t, dir, "session", "start", "--minutes", "0")
	assert.Error(t, err)
}
