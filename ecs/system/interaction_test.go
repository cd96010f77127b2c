package system

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/podescape/ecs"
	"github.com/milk9111/podescape/ecs/component"
)

type reactorFunc func(kind component.TriggerKind, character int) (Reaction, bool, error)

func (f reactorFunc) React(kind component.TriggerKind, character int) (Reaction, bool, error) {
	return f(kind, character)
}

func TestReactionScript(t *testing.T) {
	script, err := LoadReactionScript("interactions.tengo")
	require.NoError(t, err)

	tests := []struct {
		name      string
		kind      component.TriggerKind
		character int
		want      Reaction
		ok        bool
	}{
		{name: "bed_left", kind: component.TriggerBed, character: 0, ok: true,
			want: Reaction{Sound: "hm_hm", Pitch: 0.8, Delay: 2, Text: "I can't sleep... I need to find a way out of here."}},
		{name: "bed_center", kind: component.TriggerBed, character: 1, ok: true,
			want: Reaction{Sound: "hm_hm", Pitch: 1.8, Delay: 2, Text: "I can't sleep... I need to find a way out of here."}},
		{name: "door_right", kind: component.TriggerDoor, character: 2, ok: true,
			want: Reaction{Sound: "hm", Pitch: 1.2, Delay: 2, Text: "It's locked... just like always."}},
		{name: "computer_has_no_reaction", kind: component.TriggerComputer, character: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := script.React(tc.kind, tc.character)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestReactionScriptErrors(t *testing.T) {
	_, err := NewReactionScript("broken", []byte("react := func(kind, character) {"))
	assert.Error(t, err)

	script, err := NewReactionScript("number", []byte("react := func(kind, character) { return 3 }"))
	require.NoError(t, err)
	_, ok, err := script.React(component.TriggerBed, 0)
	assert.False(t, ok)
	assert.Error(t, err)

	script, err = NewReactionScript("defaults", []byte(`react := func(kind, character) { return {sound: "hm"} }`))
	require.NoError(t, err)
	r, ok, err := script.React(component.TriggerDoor, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Reaction{Sound: "hm", Pitch: 1}, r)
}

func TestInteractionComputerEntersMinigame(t *testing.T) {
	lvl := newTestLevel(t)
	rec := &eventRecorder{}
	sys := NewInteractionSystem(nil, nil, nil, 0, zerolog.Nop())

	step(lvl.w, 1, tick, push(ecs.Event{Kind: ecs.EventTriggerEnter, Index: 1, Trigger: component.TriggerComputer}), sys, rec)

	require.Equal(t, 1, rec.count(ecs.EventEnterMinigame))
	for _, ev := range rec.events {
		if ev.Kind == ecs.EventEnterMinigame {
			assert.Equal(t, 1, ev.Index)
		}
	}
}

func TestInteractionReactionCooldown(t *testing.T) {
	lvl := newTestLevel(t)
	audio, ui := &fakeAudio{}, newFakeUI()
	calls := 0
	reactor := reactorFunc(func(kind component.TriggerKind, character int) (Reaction, bool, error) {
		calls++
		return Reaction{Sound: "hm", Pitch: 1.5, Delay: 2, Text: "Locked."}, true, nil
	})
	sys := NewInteractionSystem(reactor, audio, ui, 4, zerolog.Nop())
	door := ecs.Event{Kind: ecs.EventTriggerEnter, Index: 0, Trigger: component.TriggerDoor}

	step(lvl.w, 1, tick, push(door), sys)
	require.Len(t, audio.sounds, 1)
	assert.Equal(t, soundCall{id: "hm", delay: 2, pitch: 1.5}, audio.sounds[0])
	assert.Equal(t, []string{"Locked."}, ui.dialogues)
	assert.Equal(t, 4.0, lvl.char(0).InteractCooldown)

	step(lvl.w, 1, tick, push(door), sys)
	assert.Equal(t, 1, calls, "cooldown blocks the second reaction")
	assert.Len(t, audio.sounds, 1)
}

func TestInteractionReactorFailures(t *testing.T) {
	tests := []struct {
		name    string
		reactor Reactor
	}{
		{name: "none"},
		{name: "error", reactor: reactorFunc(func(component.TriggerKind, int) (Reaction, bool, error) {
			return Reaction{}, false, errors.New("boom")
		})},
		{name: "no_reaction", reactor: reactorFunc(func(component.TriggerKind, int) (Reaction, bool, error) {
			return Reaction{}, false, nil
		})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := newTestLevel(t)
			audio := &fakeAudio{}
			sys := NewInteractionSystem(tc.reactor, audio, nil, 4, zerolog.Nop())

			step(lvl.w, 1, tick, push(ecs.Event{Kind: ecs.EventTriggerEnter, Index: 2, Trigger: component.TriggerBed}), sys)

			assert.Empty(t, audio.sounds)
			assert.Zero(t, lvl.char(2).InteractCooldown)
		})
	}
}
