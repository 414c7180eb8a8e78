package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/logging"
	"github.com/bnema/astropost/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	content  *mocks.MockContentSource
	images   *mocks.MockImageSource
	composer *mocks.MockImageComposer
	channel  *mocks.MockChannel
	pacer    *countingPacer
	observer *recordingObserver
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	return &pipelineFixture{
		content:  mocks.NewMockContentSource(t),
		images:   mocks.NewMockImageSource(t),
		composer: mocks.NewMockImageComposer(t),
		channel:  mocks.NewMockChannel(t),
		pacer:    &countingPacer{},
		observer: newRecordingObserver(),
	}
}

func (f *pipelineFixture) pipeline(channels ChannelSource) *Pipeline {
	return NewPipeline(PipelineDeps{
		Content:  f.content,
		Images:   f.images,
		Composer: f.composer,
		Channels: channels,
		Pacer:    f.pacer,
		Observer: f.observer,
		Logger:   logging.Discard(),
	})
}

func payloadFor(topic domain.Topic) domain.ContentPayload {
	return domain.ContentPayload{Topic: topic, Description: topic.Title() + " shines.", Mood: "Calm", LuckyNumber: 7, Color: "Gold"}
}

func fullBatch() []domain.PostPackage {
	packages := make([]domain.PostPackage, 0, domain.TopicCount)
	for _, topic := range domain.AllTopics() {
		packages = append(packages, domain.PostPackage{
			Topic:       topic,
			ImagePath:   "/posts/" + string(topic) + ".png",
			Caption:     "caption " + string(topic),
			Description: topic.Title() + " shines.",
		})
	}
	return packages
}

func TestPipelineGenerateSkipsFailedTopicsAndFallsBackOnCaption(t *testing.T) {
	f := newPipelineFixture(t)

	for _, topic := range domain.AllTopics() {
		switch topic {
		case domain.TopicTaurus:
			f.content.EXPECT().Generate(mockAnyContext(), topic).Return(domain.ContentPayload{}, errors.New("model overloaded"))
		case domain.TopicGemini:
			f.content.EXPECT().Generate(mockAnyContext(), topic).Return(payloadFor(topic), nil)
			f.content.EXPECT().Caption(mockAnyContext(), payloadFor(topic)).Return(domain.Caption{}, errors.New("caption failed"))
			f.images.EXPECT().Fetch(mockAnyContext(), "mystical gold abstract").Return("/raw/"+string(topic)+".jpg", nil).Once()
			f.composer.EXPECT().Compose(mockAnyContext(), "/raw/gemini.jpg", "Gemini shines.", "Gemini").Return("/posts/gemini.png", nil)
		case domain.TopicLeo:
			f.content.EXPECT().Generate(mockAnyContext(), topic).Return(payloadFor(topic), nil)
			f.content.EXPECT().Caption(mockAnyContext(), payloadFor(topic)).Return(domain.Caption{Body: "Leo!", Tags: []string{"leo"}}, nil)
			f.images.EXPECT().Fetch(mockAnyContext(), "mystical gold abstract").Return("", domain.ErrImageSourceDisabled).Once()
		default:
			f.content.EXPECT().Generate(mockAnyContext(), topic).Return(payloadFor(topic), nil)
			f.content.EXPECT().Caption(mockAnyContext(), payloadFor(topic)).Return(domain.Caption{Body: topic.Title(), Tags: []string{"#astro"}}, nil)
			f.images.EXPECT().Fetch(mockAnyContext(), "mystical gold abstract").Return("/raw/"+string(topic)+".jpg", nil).Once()
			f.composer.EXPECT().Compose(mockAnyContext(), "/raw/"+string(topic)+".jpg", topic.Title()+" shines.", topic.Title()).Return("/posts/"+string(topic)+".png", nil)
		}
	}

	packages := f.pipeline(staticChannels{}).Generate(context.Background())

	require.Len(t, packages, domain.TopicCount-2)
	assert.NotContains(t, domain.PackageTopics(packages), domain.TopicTaurus)
	assert.NotContains(t, domain.PackageTopics(packages), domain.TopicLeo)
	assert.Equal(t, domain.TopicAries, packages[0].Topic)

	for _, pkg := range packages {
		if pkg.Topic == domain.TopicGemini {
			assert.Equal(t, "Gemini shines.\n\n#astrology #horoscope #gemini", pkg.Caption)
		}
	}

	assert.Equal(t, map[domain.Topic]string{domain.TopicTaurus: StageContent, domain.TopicLeo: StageImage}, f.observer.skipped)
	assert.Len(t, f.observer.generated, domain.TopicCount-2)
}

func TestPipelineGenerateContentFailureMakesNoImageCall(t *testing.T) {
	f := newPipelineFixture(t)
	p := NewPipeline(PipelineDeps{
		Content:  f.content,
		Images:   f.images,
		Composer: f.composer,
		Logger:   logging.Discard(),
		Topics:   []domain.Topic{domain.TopicAries},
	})

	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).Return(domain.ContentPayload{}, errors.New("boom"))

	assert.Empty(t, p.Generate(context.Background()))
	f.images.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestPipelineGenerateComposerFailureSkipsTopic(t *testing.T) {
	f := newPipelineFixture(t)
	p := NewPipeline(PipelineDeps{
		Content:  f.content,
		Images:   f.images,
		Composer: f.composer,
		Observer: f.observer,
		Logger:   logging.Discard(),
		Topics:   []domain.Topic{domain.TopicAries},
	})

	f.content.EXPECT().Generate(mockAnyContext(), domain.TopicAries).Return(payloadFor(domain.TopicAries), nil)
	f.content.EXPECT().Caption(mockAnyContext(), payloadFor(domain.TopicAries)).Return(domain.Caption{Body: "x"}, nil)
	f.images.EXPECT().Fetch(mockAnyContext(), "mystical gold abstract").Return("/raw/aries.jpg", nil)
	f.composer.EXPECT().Compose(mockAnyContext(), "/raw/aries.jpg", "Aries shines.", "Aries").Return("", errors.New("decode failed"))

	assert.Empty(t, p.Generate(context.Background()))
	assert.Equal(t, StageCompose, f.observer.skipped[domain.TopicAries])
}

func TestPipelinePublishSequentialReportsConfirmedOnly(t *testing.T) {
	f := newPipelineFixture(t)
	p := f.pipeline(staticChannels{channel: f.channel})

	packages := fullBatch()[:3]
	f.channel.EXPECT().PublishSingle(mockAnyContext(), packages[0].ImagePath, packages[0].Caption).Return(nil)
	f.channel.EXPECT().PublishSingle(mockAnyContext(), packages[1].ImagePath, packages[1].Caption).Return(domain.ErrPublishRejected)
	f.channel.EXPECT().PublishSingle(mockAnyContext(), packages[2].ImagePath, packages[2].Caption).Return(nil)

	report := p.PublishSequential(context.Background(), packages)

	require.NoError(t, report.Err)
	assert.Equal(t, domain.PublishModeSequential, report.Mode)
	assert.Equal(t, []domain.PostPackage{packages[0], packages[2]}, report.Published)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, packages[1].Topic, report.Failures[0].Topic)
	assert.Equal(t, 1, f.pacer.calls)
	assert.Equal(t, []bool{true, false, true}, f.observer.publishes)
	assert.False(t, report.OK())
}

func TestPipelinePublishSequentialStopsWhenPauseIsCancelled(t *testing.T) {
	f := newPipelineFixture(t)
	f.pacer.err = context.Canceled
	p := f.pipeline(staticChannels{channel: f.channel})

	packages := fullBatch()[:3]
	f.channel.EXPECT().PublishSingle(mockAnyContext(), packages[0].ImagePath, packages[0].Caption).Return(nil)

	report := p.PublishSequential(context.Background(), packages)
	require.ErrorIs(t, report.Err, context.Canceled)
	assert.Len(t, report.Published, 1)
}

func TestPipelinePublishRequiresChannel(t *testing.T) {
	f := newPipelineFixture(t)
	p := f.pipeline(staticChannels{err: domain.ErrNotAuthenticated})

	sequential := p.PublishSequential(context.Background(), fullBatch())
	require.ErrorIs(t, sequential.Err, domain.ErrNotAuthenticated)
	assert.Empty(t, sequential.Published)

	carousel := p.PublishCarousel(context.Background(), fullBatch())
	require.ErrorIs(t, carousel.Err, domain.ErrNotAuthenticated)
	assert.Empty(t, carousel.Published)
}

func TestPipelinePublishCarouselRejectsUnderfilledBatch(t *testing.T) {
	f := newPipelineFixture(t)
	p := f.pipeline(staticChannels{channel: f.channel})

	report := p.PublishCarousel(context.Background(), fullBatch()[:11])
	require.ErrorIs(t, report.Err, domain.ErrUnderfilledBatch)
	assert.Empty(t, report.Published)
	f.channel.AssertNotCalled(t, "PublishCarousel", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipelinePublishCarouselMakesOneCallWithMasterCaption(t *testing.T) {
	f := newPipelineFixture(t)
	p := f.pipeline(staticChannels{channel: f.channel})

	packages := fullBatch()
	f.channel.EXPECT().
		PublishCarousel(mockAnyContext(), domain.ImagePaths(packages), domain.MasterCaption(packages)).
		Run(func(_ context.Context, paths []string, caption string) {
			assert.Len(t, paths, 12)
			assert.True(t, strings.HasPrefix(caption, "✨ Your daily horoscope is here! ✨"))
			assert.Contains(t, caption, "• Aries: Aries shines.")
		}).
		Return(nil).
		Once()

	report := p.PublishCarousel(context.Background(), packages)
	require.NoError(t, report.Err)
	assert.Equal(t, packages, report.Published)
}

func TestPipelinePublishCarouselRejection(t *testing.T) {
	f := newPipelineFixture(t)
	p := f.pipeline(staticChannels{channel: f.channel})

	f.channel.EXPECT().PublishCarousel(mockAnyContext(), mock.Anything, mock.Anything).Return(errors.New("feedback_required"))

	report := p.PublishCarousel(context.Background(), fullBatch())
	require.ErrorIs(t, report.Err, domain.ErrPublishRejected)
	assert.Empty(t, report.Published)
}

func TestRandomPacerStaysInRange(t *testing.T) {
	pacer := RandomPacer{Min: 30 * time.Second, Max: 90 * time.Second}
	for i := 0; i < 200; i++ {
		d := pacer.Duration()
		assert.GreaterOrEqual(t, d, 30*time.Second)
		assert.LessOrEqual(t, d, 90*time.Second)
	}

	assert.Equal(t, time.Second, RandomPacer{Min: time.Second, Max: time.Second}.Duration())
}

func TestRandomPacerPauseIsCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RandomPacer{Min: time.Hour, Max: 2 * time.Hour}.Pause(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
