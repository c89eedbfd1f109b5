// Package planner wires the form reader, snapshot renderer, codec, brief
// exporter and feedback slot into the widget's event flow: initialise
// (restore or read), react to field changes, submit, export, and schedule a
// call.
package planner
