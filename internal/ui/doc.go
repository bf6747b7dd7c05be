// Package ui implements the interactive dashboard using bubbletea's Elm architecture.
//
// The TUI mirrors the HTTP API's browser dashboard as a terminal app:
//  1. [AuthView] : Prompt for the API key when none is stored
//  2. [BoardView] : Kanban columns with card movement between statuses
//  3. [WeeksView] : Task history grouped by ISO week, expand/collapse
//  4. [ActivityView] : Recently completed tasks
//  5. [FormView] : Create a new task
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All server traffic goes through [services.TasksClient]; a 401 on any request
// clears the stored key and drops back to [AuthView].
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
