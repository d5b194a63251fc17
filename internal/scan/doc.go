// Package scan resolves lyrics for whole music libraries.
//
// # Manager
//
// The Manager coordinates a library scan:
//
//  1. Walk the root directory for audio files
//  2. Resolve lyrics of each track from sidecar files or tags, concurrently
//  3. Export the parsed lyrics next to each track (optional)
//  4. Report progress and per-track results
//
// # Basic Usage
//
//	manager := scan.NewManager(settings, service, scan.Options{Export: true}, log,
//	    func(event scan.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	results, err := manager.Scan(ctx, "/music")
//	if err != nil {
//	    log.Fatal(err)
//	}
package scan
