package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkstats/stats-analyzer/internal/adapter"
	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/logger"
	"github.com/rinkstats/stats-analyzer/internal/mocks"
	"github.com/rinkstats/stats-analyzer/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func testConfig() jetstream.Config {
	return jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "STATS_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "stats-analyzer-test",
	}
}

func testEvent() *domain.StatsEvent {
	return &domain.StatsEvent{
		EventID:     "01JBQW5T9GZB4T4N7C1HQKXRW9",
		PayloadType: domain.PayloadTypeGame,
		SnapshotID:  10,
		Action:      domain.StatsActionApplied,
		Timestamp:   time.Date(2024, 11, 2, 22, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_PublishStatsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)

	natsJS.EXPECT().
		Connect("nats://localhost:4222", gomock.Any()).
		Return(nc, js, nil)

	var gotSubject string
	var gotData []byte
	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, subject string, data []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			gotSubject = subject
			gotData = data
			return &natsjs.PubAck{}, nil
		})

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	require.NoError(t, pub.PublishStatsEvent(context.Background(), testEvent()))

	assert.Equal(t, "stats.game.applied", gotSubject)

	var decoded domain.StatsEvent
	require.NoError(t, json.Unmarshal(gotData, &decoded))
	assert.Equal(t, "01JBQW5T9GZB4T4N7C1HQKXRW9", decoded.EventID)
	assert.Equal(t, int64(10), decoded.SnapshotID)
	assert.Equal(t, domain.StatsActionApplied, decoded.Action)
}

func TestPublisher_SubjectPerAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)

	var subjects []string
	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, subject string, _ []byte, _ ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			subjects = append(subjects, subject)
			return &natsjs.PubAck{}, nil
		}).Times(2)

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	retracted := testEvent()
	retracted.PayloadType = domain.PayloadTypeGameEvent
	retracted.Action = domain.StatsActionRetracted

	require.NoError(t, pub.PublishStatsEvent(context.Background(), testEvent()))
	require.NoError(t, pub.PublishStatsEvent(context.Background(), retracted))

	assert.Equal(t, []string{"stats.game.applied", "stats.game_event.retracted"}, subjects)
}

func TestPublisher_ConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	assert.Error(t, err)
	assert.Nil(t, pub)
}

func TestPublisher_PublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no responders available"))

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	err = pub.PublishStatsEvent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "failed to publish event")
}

func TestPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nc := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	natsJS := mocks.NewMockNatsJetStream(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	nc.EXPECT().Close()

	pub, err := jetstream.NewPublisher(testConfig(), natsJS, adapter.NewJSON())
	require.NoError(t, err)

	pub.Close()
}
