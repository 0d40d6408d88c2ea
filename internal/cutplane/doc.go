// Package cutplane turns a pointer drag across the viewport into a cutting
// plane through the loaded mesh.
//
// A Control listens to a Surface, tracks the drag with a Gesture, solves the
// plane with Solve on every move and, when the drag ends, places a single
// plane artifact in the Scene sized to the mesh bounds handed over by a
// Binder. Everything runs on the caller's goroutine.
package cutplane
