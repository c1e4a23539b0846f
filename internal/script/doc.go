// Package script defines the boundary between the loader and the
// environment that runs a mod's data-stage scripts.
//
// An Executor runs one Script for one mod and load phase against an
// Environment that exposes the shared raw table built so far. Its result is
// a value tree shaped kind -> name -> field table holding every prototype
// the script defined or changed. Failures are reported as *ExecutionError.
package script
