// Package urls provides constants for the documentation URLs printed by the CLI.
//
// Usage:
//
//	import "github.com/muurk/netatmo/internal/urls"
//
//	fmt.Printf("Create an app at %s\n", urls.DeveloperApps)
package urls
