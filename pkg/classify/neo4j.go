package classify

import (
	"errors"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const systemNeo4j = "neo4j"

// Neo4j classifies an error returned by the Neo4j Go driver. Server errors
// ([*db.Neo4jError]) are mapped from their status code
// ("Neo.<classification>.<category>.<title>") and annotated with the full
// code; transient errors are retryable. Driver-side [*neo4j.UsageError]
// classifies as validation and [*neo4j.ConnectivityError] as unavailable.
// If err is nil, Neo4j returns nil.
//
// Example:
//
//	records, err := session.Run(ctx, cypher, params)
//	if err != nil {
//	    return classify.Neo4j(err, "match profile failed")
//	}
func Neo4j(err error, message string) *fault.Error {
	if err == nil {
		return nil
	}
	if kind, ok := contextKind(err); ok {
		return classified(err, message, systemNeo4j, kind, Retryable(kind))
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		kind := kindForNeo4jCode(neoErr.Code)
		return classified(err, message, systemNeo4j, kind, Retryable(kind)).Ctx(map[string]any{
			"neo4j.code": neoErr.Code,
		})
	}

	var usageErr *neo4j.UsageError
	if errors.As(err, &usageErr) {
		return classified(err, message, systemNeo4j, KindValidation, false)
	}

	var connErr *neo4j.ConnectivityError
	if errors.As(err, &connErr) {
		return classified(err, message, systemNeo4j, KindUnavailable, true)
	}

	return classified(err, message, systemNeo4j, KindInternal, false)
}

// kindForNeo4jCode maps a Neo4j status code of the form
// "Neo.<classification>.<category>.<title>" to a fault kind.
func kindForNeo4jCode(code string) string {
	parts := strings.Split(code, ".")
	if len(parts) < 4 {
		return KindInternal
	}
	classification, category, title := parts[1], parts[2], parts[3]

	if classification == "TransientError" {
		return KindUnavailable
	}
	if classification != "ClientError" {
		return KindInternal
	}
	switch category {
	case "Security":
		return KindAuth
	case "Statement":
		return KindValidation
	case "Schema":
		if strings.Contains(title, "ConstraintValidationFailed") {
			return KindConflict
		}
		return KindValidation
	case "Database":
		if strings.Contains(title, "DatabaseNotFound") {
			return KindNotFound
		}
		return KindInternal
	default:
		return KindInternal
	}
}
