// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, the resource services, the session store
// and the notification center into a single process lifecycle: restore or
// establish a session, run the main loop, and start over on logout.
package client
