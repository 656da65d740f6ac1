// Package inline provides a Go SDK for managing sandbox sessions
// programmatically.
//
// This package allows applications (chat bots, automation, tooling) to
// create per-user workspaces, run Python code in hardened containers and
// install packages, without shelling out to the inline CLI binary.
//
// # Quick Start
//
// Create a client, create a session, and run code:
//
//	client, err := inline.New(inline.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := client.CreateSession(ctx, "user-42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Run(ctx, session.ID, "2 + 2", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text())
//
// # Engines
//
// The SDK supports two engine types:
//
//   - [EngineDocker]: Real hardened Docker containers. Requires a reachable
//     Docker daemon; runs are network-isolated, installs are not.
//   - [EngineFake]: In-memory fake engine for unit testing. No containers
//     needed. Set [Config].Engine to [EngineFake] to use it.
//
// # Workspaces
//
// Each session owns an isolated workspace directory that persists across
// runs. Navigate and manipulate it:
//
//	client.Look(ctx, "user-42", "data")
//	client.WriteFile(ctx, "user-42", "notes.txt", []byte("hello"))
//	client.RemovePath(ctx, "user-42", "notes.txt", false)
//
// All paths resolve against the session's current directory and can never
// escape the workspace, symlinks included.
//
// # Package Installs
//
// Install packages into the workspace so later runs can import them. The
// install log streams through an optional callback:
//
//	res, err := client.Install(ctx, "user-42", []string{"requests"}, func(tail string) {
//	    fmt.Println(tail)
//	})
//
// # Health Checks
//
// Run preflight checks to verify the runtime environment:
//
//	results, _ := client.Doctor(ctx)
//	for _, r := range results {
//	    fmt.Printf("%s: %s (%s)\n", r.ID, r.Message, r.Status)
//	}
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Session or path does not exist.
//   - [ErrExpired]: Session aged past the retention window.
//   - [ErrAlreadyExists]: A live session already occupies the id.
//   - [ErrNotValid]: Invalid input or operation.
//   - [ErrPathEscape]: Path resolved outside the session workspace.
//
// # Testing
//
// Use [EngineFake] and a temporary base directory to write tests without a
// Docker daemon:
//
//	client, _ := inline.New(inline.Config{
//	    BaseDir: t.TempDir(),
//	    Engine:  inline.EngineFake,
//	})
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. Session
// state lives on the filesystem and services are created per-operation.
package inline
