//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/couchcryptid/climate-dashboard/internal/database"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startMySQL runs a MySQL container and returns a provider whose schema is
// already bootstrapped.
func startMySQL(ctx context.Context, t *testing.T) *database.Provider {
	t.Helper()

	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("climate"),
		tcmysql.WithUsername("climate"),
		tcmysql.WithPassword("climate"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start mysql container")

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	provider := database.NewProvider(discardLogger())
	require.NoError(t, provider.Init(database.Settings{
		Driver:       database.DriverMySQL,
		URL:          dsn,
		MaxOpenConns: 5,
	}))
	t.Cleanup(func() { _ = provider.Close() })

	db, err := provider.Conn(ctx)
	require.NoError(t, err)
	require.NoError(t, database.Bootstrap(ctx, db, database.DriverMySQL))

	return provider
}

// startKafka runs a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("climate-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}
