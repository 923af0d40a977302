// Package autolock wires a door to a timer so the door locks itself after
// its timeout.
//
// The door and timer packages do not know about each other. This package
// is the integrator: DoorTimeoutAdapter is a timer.Client that locks a
// door, and Opener unlocks a door and schedules the adapter in one step.
package autolock
