package application

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tomlrepo "github.com/bnema/astropost/internal/adapters/repo/toml"
	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/logging"
	"github.com/bnema/astropost/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orchestratorFixture struct {
	pipelineFixture
	platform *mocks.MockPlatform
	store    *mocks.MockCredentialStore
	sessions *SessionManager
	history  *tomlrepo.Repository
}

func newOrchestratorFixture(t *testing.T, authenticated bool) *orchestratorFixture {
	t.Helper()

	f := &orchestratorFixture{
		pipelineFixture: *newPipelineFixture(t),
		platform:        mocks.NewMockPlatform(t),
		store:           mocks.NewMockCredentialStore(t),
	}
	f.sessions = NewSessionManager(f.platform, f.store, logging.Discard())

	if authenticated {
		f.store.EXPECT().Load(mockAnyContext()).Return([]byte("blob"), nil).Once()
		f.platform.EXPECT().Resume(mockAnyContext(), []byte("blob")).Return(f.channel, nil).Once()
		f.channel.EXPECT().Account().Return("planetsvibe").Maybe()
		f.sessions.Restore(context.Background())
		require.True(t, f.sessions.Status().Authenticated)
	}

	config := viper.New()
	config.Set("history.path", filepath.Join(t.TempDir(), "history.toml"))
	history, err := tomlrepo.NewRepository(config)
	require.NoError(t, err)
	f.history = history

	return f
}

func (f *orchestratorFixture) orchestrator(topics ...domain.Topic) *Orchestrator {
	pipeline := NewPipeline(PipelineDeps{
		Content:  f.content,
		Images:   f.images,
		Composer: f.composer,
		Channels: f.sessions,
		Pacer:    f.pacer,
		Observer: f.observer,
		Logger:   logging.Discard(),
		Topics:   topics,
	})

	var seq int
	var mu sync.Mutex
	return NewOrchestrator(OrchestratorDeps{
		Sessions:    f.sessions,
		Pipeline:    pipeline,
		History:     f.history,
		Observer:    f.observer,
		Clock:       newFakeClock(time.Date(2026, 3, 21, 8, 0, 0, 0, time.UTC)),
		Location:    time.UTC,
		Logger:      logging.Discard(),
		DefaultMode: domain.PublishModeCarousel,
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return "cycle-" + string(rune('0'+seq))
		},
	})
}

func (f *orchestratorFixture) expectTopic(topic domain.Topic) {
	f.content.EXPECT().Generate(mockAnyContext(), topic).Return(payloadFor(topic), nil)
	f.content.EXPECT().Caption(mockAnyContext(), payloadFor(topic)).Return(domain.Caption{Body: topic.Title()}, nil)
	f.images.EXPECT().Fetch(mockAnyContext(), "mystical gold abstract").Return("/raw/"+string(topic)+".jpg", nil)
	f.composer.EXPECT().Compose(mockAnyContext(), "/raw/"+string(topic)+".jpg", mock.Anything, topic.Title()).Return("/posts/"+string(topic)+".png", nil)
}

func TestOrchestratorRunGenerationOnlyRecordsHistory(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator(domain.TopicAries, domain.TopicTaurus)
	f.expectTopic(domain.TopicAries)
	f.expectTopic(domain.TopicTaurus)

	report := o.RunGenerationOnly(context.Background())
	require.NoError(t, report.Err)
	assert.Len(t, report.Packages, 2)
	assert.Equal(t, domain.CycleOutcomeGenerated, report.Record.Outcome)
	assert.Equal(t, domain.PublishModeNone, report.Record.Mode)
	assert.Equal(t, []domain.Topic{domain.TopicAries, domain.TopicTaurus}, report.Record.Generated)

	last, ok, err := o.LastCycle(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report.Record.ID, last.ID)
	assert.Equal(t, []domain.CycleOutcome{domain.CycleOutcomeGenerated}, f.observer.cycles)
}

func TestOrchestratorPublishRequiresSessionBeforeGenerating(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator()

	report := o.RunGenerationAndPublish(context.Background(), domain.PublishModeCarousel)
	require.ErrorIs(t, report.Err, domain.ErrNotAuthenticated)
	assert.Equal(t, domain.CycleOutcomeFailed, report.Record.Outcome)
	f.content.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)

	records, err := o.History(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Reason, "not authenticated")
}

func TestOrchestratorCarouselCyclePublishes(t *testing.T) {
	f := newOrchestratorFixture(t, true)
	o := f.orchestrator(domain.TopicAries)
	f.expectTopic(domain.TopicAries)
	f.channel.EXPECT().PublishCarousel(mockAnyContext(), []string{"/posts/aries.png"}, mock.Anything).Return(nil).Once()

	report := o.RunGenerationAndPublish(context.Background(), "")
	require.NoError(t, report.Err)
	assert.Equal(t, domain.PublishModeCarousel, report.Record.Mode)
	assert.Equal(t, domain.CycleOutcomePublished, report.Record.Outcome)
	assert.Equal(t, []domain.Topic{domain.TopicAries}, report.Record.Published)
}

func TestOrchestratorSequentialPartialOutcome(t *testing.T) {
	f := newOrchestratorFixture(t, true)
	o := f.orchestrator(domain.TopicAries, domain.TopicTaurus)
	f.expectTopic(domain.TopicAries)
	f.expectTopic(domain.TopicTaurus)
	f.channel.EXPECT().PublishSingle(mockAnyContext(), "/posts/aries.png", mock.Anything).Return(errors.New("rejected"))
	f.channel.EXPECT().PublishSingle(mockAnyContext(), "/posts/taurus.png", mock.Anything).Return(nil)

	report := o.RunGenerationAndPublish(context.Background(), domain.PublishModeSequential)
	require.Error(t, report.Err)
	assert.Equal(t, domain.CycleOutcomePartial, report.Record.Outcome)
	assert.Equal(t, []domain.Topic{domain.TopicTaurus}, report.Record.Published)
	require.Len(t, report.Record.Failures, 1)
	assert.Equal(t, domain.TopicAries, report.Record.Failures[0].Topic)
}

func TestOrchestratorNoPackagesFailsCycle(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator(domain.TopicAries)
	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).Return(domain.ContentPayload{}, errors.New("down"))

	report := o.RunGenerationOnly(context.Background())
	require.Error(t, report.Err)
	assert.Equal(t, domain.CycleOutcomeFailed, report.Record.Outcome)
}

func TestOrchestratorConcurrentTriggersShareOneCycle(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator(domain.TopicAries)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).
		RunAndReturn(func(context.Context, domain.Topic) (domain.ContentPayload, error) {
			close(entered)
			<-release
			return payloadFor(domain.TopicAries), nil
		}).Once()
	f.content.EXPECT().Caption(mockAnyContext(), mock.Anything).Return(domain.Caption{Body: "x"}, nil).Once()
	f.images.EXPECT().Fetch(mockAnyContext(), mock.Anything).Return("/raw/aries.jpg", nil).Once()
	f.composer.EXPECT().Compose(mockAnyContext(), mock.Anything, mock.Anything, mock.Anything).Return("/posts/aries.png", nil).Once()

	reports := make(chan CycleReport, 2)
	go func() { reports <- o.RunGenerationOnly(context.Background()) }()
	<-entered
	go func() { reports <- o.RunGenerationOnly(context.Background()) }()

	// give the second trigger time to join the in-flight cycle
	time.Sleep(50 * time.Millisecond)
	close(release)

	first, second := <-reports, <-reports
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.True(t, first.Shared || second.Shared)

	records, err := o.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestOrchestratorRefusesTriggerForAnotherModeWhileCycleRuns(t *testing.T) {
	f := newOrchestratorFixture(t, true)
	o := f.orchestrator(domain.TopicAries)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).
		RunAndReturn(func(context.Context, domain.Topic) (domain.ContentPayload, error) {
			close(entered)
			<-release
			return payloadFor(domain.TopicAries), nil
		}).Once()
	f.content.EXPECT().Caption(mockAnyContext(), mock.Anything).Return(domain.Caption{Body: "x"}, nil).Once()
	f.images.EXPECT().Fetch(mockAnyContext(), mock.Anything).Return("/raw/aries.jpg", nil).Once()
	f.composer.EXPECT().Compose(mockAnyContext(), mock.Anything, mock.Anything, mock.Anything).Return("/posts/aries.png", nil).Once()

	generated := make(chan CycleReport, 1)
	go func() { generated <- o.RunGenerationOnly(context.Background()) }()
	<-entered

	publish := o.RunGenerationAndPublish(context.Background(), domain.PublishModeSequential)
	require.ErrorIs(t, publish.Err, domain.ErrCycleInProgress)
	assert.Equal(t, domain.CycleOutcomeFailed, publish.Record.Outcome)
	assert.Equal(t, domain.PublishModeSequential, publish.Record.Mode)
	assert.Contains(t, publish.Record.Reason, "mode none")
	assert.False(t, publish.Shared)
	assert.Empty(t, publish.Packages)

	close(release)
	first := <-generated
	require.NoError(t, first.Err)
	assert.Equal(t, domain.CycleOutcomeGenerated, first.Record.Outcome)

	records, err := o.History(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.PublishModeNone, records[0].Mode)
	f.channel.AssertNotCalled(t, "PublishSingle", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestratorCycleSurvivesLeaderCancellation(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator(domain.TopicAries, domain.TopicTaurus)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).
		RunAndReturn(func(context.Context, domain.Topic) (domain.ContentPayload, error) {
			close(entered)
			<-release
			return payloadFor(domain.TopicAries), nil
		}).Once()
	f.content.EXPECT().Caption(mockAnyContext(), payloadFor(domain.TopicAries)).Return(domain.Caption{Body: "x"}, nil).Once()
	f.images.EXPECT().Fetch(mockAnyContext(), mock.Anything).Return("/raw/aries.jpg", nil).Once()
	f.composer.EXPECT().Compose(mockAnyContext(), "/raw/aries.jpg", mock.Anything, mock.Anything).Return("/posts/aries.png", nil).Once()
	f.expectTopic(domain.TopicTaurus)

	leaderCtx, cancel := context.WithCancel(context.Background())
	reports := make(chan CycleReport, 2)
	go func() { reports <- o.RunGenerationOnly(leaderCtx) }()
	<-entered
	go func() { reports <- o.RunGenerationOnly(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	close(release)

	for range 2 {
		report := <-reports
		require.NoError(t, report.Err)
		assert.Equal(t, []domain.Topic{domain.TopicAries, domain.TopicTaurus}, report.Record.Generated)
	}
}

func TestOrchestratorAutomationLifecycle(t *testing.T) {
	f := newOrchestratorFixture(t, false)
	o := f.orchestrator()

	invalid := o.StartAutomation("25:00")
	assert.False(t, invalid.Success)
	assert.Contains(t, invalid.Reason, "invalid time of day")

	started := o.StartAutomation("23:59")
	require.True(t, started.Success)
	assert.True(t, started.State.Active)
	assert.Equal(t, "23:59", o.AutomationStatus().At)

	again := o.StartAutomation("10:30")
	assert.False(t, again.Success)
	assert.Equal(t, "23:59", again.State.At)

	stopped := o.StopAutomation()
	assert.True(t, stopped.Success)
	assert.False(t, stopped.State.Active)

	assert.False(t, o.StopAutomation().Success)
}
