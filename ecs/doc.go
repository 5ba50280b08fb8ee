// Package ecs forwards wick playback events into ECS worlds.
//
// [NewDonburiSink] publishes every [wick.PlaybackEvent] into a [Donburi]
// world as a typed event and mirrors the latest playback state on a
// singleton entity. Subscribe to [PlaybackEvents] in your systems to react to
// playback starting, stopping, ticking and failing.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	project.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
