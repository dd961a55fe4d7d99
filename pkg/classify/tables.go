package classify

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed sqlstate.yaml
var sqlstateYAML []byte

// tableEntry is one row of the embedded SQLSTATE mapping.
type tableEntry struct {
	Kind      string `yaml:"kind"`
	Retryable bool   `yaml:"retryable"`
}

// sqlstateTable is the parsed form of sqlstate.yaml: exact five-character
// codes take precedence over two-character class prefixes.
type sqlstateTable struct {
	Classes map[string]tableEntry `yaml:"classes"`
	Codes   map[string]tableEntry `yaml:"codes"`
}

var loadSQLStateTable = sync.OnceValue(func() sqlstateTable {
	var table sqlstateTable
	if err := yaml.Unmarshal(sqlstateYAML, &table); err != nil {
		// The table is a compiled-in asset; failing to parse it is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("classify: embedded sqlstate table is malformed: %v", err))
	}
	return table
})

// kindForSQLState resolves a five-character SQLSTATE code against the
// embedded table: exact code first, then the two-character class prefix,
// then the internal/non-retryable default.
func kindForSQLState(code string) (kind string, retryable bool) {
	table := loadSQLStateTable()
	if entry, ok := table.Codes[code]; ok {
		return entry.Kind, entry.Retryable
	}
	if len(code) >= 2 {
		if entry, ok := table.Classes[code[:2]]; ok {
			return entry.Kind, entry.Retryable
		}
	}
	return KindInternal, false
}
