package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/wickgo/wick"
)

// PlaybackEvents is the Donburi event type for wick playback events.
var PlaybackEvents = events.NewEventType[wick.PlaybackEvent]()

// PlaybackState is the component holding the latest playback state of a
// project, updated on every event.
type PlaybackState struct {
	ProjectUUID string
	Playing     bool
	Playhead    int
	Ticks       int
	LastError   *wick.ScriptError
}

// Playback is the component type of PlaybackState.
var Playback = donburi.NewComponentType[PlaybackState]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to PlaybackEvents and consumed with events.Subscribe and
// ProcessEvents. A new entity carrying the Playback component tracks the
// state of the project the sink is attached to.
func NewDonburiSink(world donburi.World) wick.EventSink {
	return &donburiSink{world: world, entity: world.Create(Playback)}
}

// StateEntity returns the entity holding sink's Playback component, or
// donburi.Null when sink was not created by NewDonburiSink.
func StateEntity(sink wick.EventSink) donburi.Entity {
	if s, ok := sink.(*donburiSink); ok {
		return s.entity
	}
	return donburi.Null
}

func (s *donburiSink) EmitEvent(event wick.PlaybackEvent) {
	if s.world.Valid(s.entity) {
		st := Playback.Get(s.world.Entry(s.entity))
		st.ProjectUUID = event.ProjectUUID
		st.Playhead = event.Playhead
		switch event.Type {
		case wick.PlaybackStarted:
			st.Playing, st.Ticks, st.LastError = true, 0, nil
		case wick.PlaybackStopped:
			st.Playing = false
		case wick.PlaybackTicked:
			st.Ticks++
		case wick.PlaybackScriptError:
			st.LastError = event.Err
		}
	}
	PlaybackEvents.Publish(s.world, event)
}
