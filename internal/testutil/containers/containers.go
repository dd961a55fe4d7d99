//go:build integration

// Package containers provides testcontainers-go helpers for the classifier
// integration tests. Each helper starts one real backend so a test can
// provoke genuine driver errors (missing rows, unknown relations, absent
// keys, bad Cypher, unknown collections) and assert how they classify.
//
// Everything here is gated behind the "integration" build tag so Docker
// and the container modules stay out of unit test builds. Callers must
// carry the same tag and terminate what they start:
//
//	res, err := containers.StartPostgres(ctx)
//	if err != nil { ... }
//	t.Cleanup(func() { _ = res.Container.Terminate(context.Background()) })
package containers

import (
	"context"

	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcqdrant "github.com/testcontainers/testcontainers-go/modules/qdrant"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

// Container images and credentials used by the Start* helpers. The
// credentials are deliberately weak; the containers are ephemeral and
// bound to localhost.
const (
	postgresImage    = "docker.io/postgres:16-alpine"
	postgresDatabase = "fault_test"
	postgresUser     = "testuser"
	postgresPassword = "testpassword"

	redisImage = "docker.io/redis:7-alpine"

	minioImage     = "docker.io/minio/minio:latest"
	minioAccessKey = "minioadmin"
	minioSecretKey = "minioadmin"

	neo4jImage    = "docker.io/neo4j:5-community"
	neo4jUsername = "neo4j"
	neo4jPassword = "testpassword"

	// Pinned to v1.12 for compatibility with go-client v1.15.x; the
	// client's version parser panics when the server major version exceeds
	// the client's by more than one.
	qdrantImage = "docker.io/qdrant/qdrant:v1.12.6"
)

// PostgresResult holds a started PostgreSQL container and a connection
// string ready for pgxpool. ConnString carries sslmode=disable because
// testcontainers expose the database on localhost without TLS.
type PostgresResult struct {
	Container  *tcpostgres.PostgresContainer
	ConnString string
}

// StartPostgres starts a PostgreSQL 16 container and waits for it to
// accept connections. The started container is terminated before
// returning if the connection string cannot be retrieved.
func StartPostgres(ctx context.Context) (*PostgresResult, error) {
	container, err := tcpostgres.Run(ctx,
		postgresImage,
		tcpostgres.WithDatabase(postgresDatabase),
		tcpostgres.WithUsername(postgresUser),
		tcpostgres.WithPassword(postgresPassword),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fault.Wrap(err, "start postgres container")
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve postgres connection string")
	}

	return &PostgresResult{Container: container, ConnString: connStr}, nil
}

// RedisResult holds a started Redis container and a redis:// connection
// string for go-redis.
type RedisResult struct {
	Container  *tcredis.RedisContainer
	ConnString string
}

// StartRedis starts a Redis 7 container with no authentication.
func StartRedis(ctx context.Context) (*RedisResult, error) {
	container, err := tcredis.Run(ctx, redisImage)
	if err != nil {
		return nil, fault.Wrap(err, "start redis container")
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve redis connection string")
	}

	return &RedisResult{Container: container, ConnString: connStr}, nil
}

// MinIOResult holds a started MinIO container, its API endpoint, and the
// root credentials the container was started with.
type MinIOResult struct {
	Container *tcminio.MinioContainer
	Endpoint  string
	AccessKey string
	SecretKey string
}

// StartMinIO starts a MinIO container with the default root credentials.
func StartMinIO(ctx context.Context) (*MinIOResult, error) {
	container, err := tcminio.Run(ctx,
		minioImage,
		tcminio.WithUsername(minioAccessKey),
		tcminio.WithPassword(minioSecretKey),
	)
	if err != nil {
		return nil, fault.Wrap(err, "start minio container")
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve minio endpoint")
	}

	return &MinIOResult{
		Container: container,
		Endpoint:  endpoint,
		AccessKey: minioAccessKey,
		SecretKey: minioSecretKey,
	}, nil
}

// Neo4jResult holds a started Neo4j container, its Bolt URL, and the
// admin credentials.
type Neo4jResult struct {
	Container *tcneo4j.Neo4jContainer
	BoltURL   string
	Username  string
	Password  string
}

// StartNeo4j starts a Neo4j 5 Community container with authentication
// enabled so credential failures can be exercised too.
func StartNeo4j(ctx context.Context) (*Neo4jResult, error) {
	container, err := tcneo4j.Run(ctx,
		neo4jImage,
		tcneo4j.WithAdminPassword(neo4jPassword),
	)
	if err != nil {
		return nil, fault.Wrap(err, "start neo4j container")
	}

	boltURL, err := container.BoltUrl(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve neo4j bolt URL")
	}

	return &Neo4jResult{
		Container: container,
		BoltURL:   boltURL,
		Username:  neo4jUsername,
		Password:  neo4jPassword,
	}, nil
}

// QdrantResult holds a started Qdrant container and its gRPC and REST
// endpoints.
type QdrantResult struct {
	Container    *tcqdrant.QdrantContainer
	GRPCEndpoint string
	RESTEndpoint string
}

// StartQdrant starts a Qdrant container with no authentication.
func StartQdrant(ctx context.Context) (*QdrantResult, error) {
	container, err := tcqdrant.Run(ctx, qdrantImage)
	if err != nil {
		return nil, fault.Wrap(err, "start qdrant container")
	}

	grpcEndpoint, err := container.GRPCEndpoint(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve qdrant gRPC endpoint")
	}

	restEndpoint, err := container.RESTEndpoint(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fault.Wrap(err, "resolve qdrant REST endpoint")
	}

	return &QdrantResult{
		Container:    container,
		GRPCEndpoint: grpcEndpoint,
		RESTEndpoint: restEndpoint,
	}, nil
}
