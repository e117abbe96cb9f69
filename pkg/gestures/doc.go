// Package gestures defines the input model shared by detectors and the
// gesture coordinator: raw pointer events, the recognizer descriptors a view
// declares, and the ordered recognizer collection with change notification.
//
// Recognizers are declarative. A [TapGestureRecognizer] states that a view
// wants taps; it does not recognize anything on its own. Recognition happens
// in package detectors, driven by package gesturemanager.
package gestures
