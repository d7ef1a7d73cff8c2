// Package toolconf reports editor tooling configuration for the project,
// pointing language-server clients at the compiled-commands database the
// build produces.
package toolconf

import (
	"os"
	"path/filepath"
)

// LanguageCFamily is the language tag for which a compilation database
// applies.
const LanguageCFamily = "cfamily"

const compileCommandsFile = "compile_commands.json"

// Query carries the recognized settings options with explicit fields.
type Query struct {
	// Language is the tag the tooling client is asking about.
	Language string
}

// LanguageServer is the language-server section of a settings result.
type LanguageServer struct {
	CompilationDatabasePath string `json:"compilationDatabasePath"`
}

// Config is the settings mapping handed back to a tooling client.
type Config struct {
	LS LanguageServer `json:"ls"`
}

// Settings answers a tooling client's configuration query for a project
// rooted at root. For C-family code with a compile_commands.json under
// <root>/build it returns the database's directory; for any other
// language, or when the database is absent, it returns (nil, false),
// meaning the client should use its defaults. A missing file is a normal
// case, never an error.
func Settings(root string, q Query) (*Config, bool) {
	if q.Language != LanguageCFamily {
		return nil, false
	}
	db := filepath.Join(root, "build", compileCommandsFile)
	if _, err := os.Stat(db); err != nil {
		return nil, false
	}
	return &Config{
		LS: LanguageServer{CompilationDatabasePath: filepath.Dir(db)},
	}, true
}
