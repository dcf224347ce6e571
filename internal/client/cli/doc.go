// Package cli provides the interactive RedDot command-line client.
//
// It wires configuration, the local token store, the API client, the session
// store and the navigator, then runs a REPL in which every page of the app is
// a view opened with "go <page>". Typical flow: restore the previous session
// or log in, land on the dashboard, log periods and wellness data, and look
// at predictions and analytics.
//
// Key features:
//   - Signup (followed by the onboarding wizard), Login, Logout
//   - Dashboard with the next period prediction and a daily tip
//   - Period log with create and delete
//   - Wellness log, profile editing, notifications
//   - Analytics summary and PNG chart export
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
