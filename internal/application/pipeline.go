package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	StageContent = "content"
	StageCaption = "caption"
	StageImage   = "image"
	StageCompose = "compose"

	DefaultPacingMin = 30 * time.Second
	DefaultPacingMax = 90 * time.Second
)

// ChannelSource yields the current authenticated channel.
type ChannelSource interface {
	Channel() (ports.Channel, error)
}

type Pacer interface {
	Pause(ctx context.Context) error
}

type PipelineDeps struct {
	Content  ports.ContentSource
	Images   ports.ImageSource
	Composer ports.ImageComposer
	Channels ChannelSource
	Pacer    Pacer
	Observer ports.CycleObserver
	Logger   logrus.FieldLogger
	// Topics overrides the canonical order, for tests.
	Topics []domain.Topic
}

type Pipeline struct {
	content  ports.ContentSource
	images   ports.ImageSource
	composer ports.ImageComposer
	channels ChannelSource
	pacer    Pacer
	observer ports.CycleObserver
	logger   logrus.FieldLogger
	topics   []domain.Topic
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		content:  deps.Content,
		images:   deps.Images,
		composer: deps.Composer,
		channels: deps.Channels,
		pacer:    deps.Pacer,
		observer: deps.Observer,
		logger:   deps.Logger,
		topics:   deps.Topics,
	}
	if p.pacer == nil {
		p.pacer = RandomPacer{Min: DefaultPacingMin, Max: DefaultPacingMax}
	}
	if p.observer == nil {
		p.observer = ports.NopObserver{}
	}
	if p.logger == nil {
		p.logger = logrus.StandardLogger()
	}
	p.logger = p.logger.WithField("component", "pipeline")
	if len(p.topics) == 0 {
		p.topics = domain.AllTopics()
	}
	return p
}

type PublishReport struct {
	Mode      domain.PublishMode
	Published []domain.PostPackage
	Failures  []domain.PublishFailure
	Err       error
}

func (r PublishReport) OK() bool {
	return r.Err == nil && len(r.Failures) == 0
}

type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return fmt.Sprintf("%s: %v", e.stage, e.err) }
func (e *stageError) Unwrap() error { return e.err }

func atStage(stage string) func(error) error {
	return func(err error) error {
		if err == nil {
			return nil
		}
		return &stageError{stage: stage, err: err}
	}
}

// Generate builds one package per topic, in order. A topic whose content,
// image or composition step fails is skipped; the rest continue.
func (p *Pipeline) Generate(ctx context.Context) []domain.PostPackage {
	packages := make([]domain.PostPackage, 0, len(p.topics))

	for _, topic := range p.topics {
		if err := ctx.Err(); err != nil {
			p.logger.WithError(err).Warn("generation interrupted")
			break
		}

		pkg := p.buildPackage(ctx, topic)
		if !pkg.OK() {
			stage := StageContent
			var se *stageError
			if errors.As(pkg.Err, &se) {
				stage = se.stage
			}
			p.logger.WithError(pkg.Err).WithFields(logrus.Fields{"topic": topic, "stage": stage}).Warn("topic skipped")
			p.observer.TopicSkipped(topic, stage)
			continue
		}

		p.logger.WithFields(logrus.Fields{"topic": topic, "image": pkg.Value.ImagePath}).Info("package ready")
		p.observer.TopicGenerated(topic)
		packages = append(packages, pkg.Value)
	}

	return packages
}

func (p *Pipeline) buildPackage(ctx context.Context, topic domain.Topic) domain.Outcome[domain.PostPackage] {
	payload, err := p.content.Generate(ctx, topic)
	if err != nil {
		return domain.Fail[domain.PostPackage](atStage(StageContent)(err))
	}

	caption := domain.Try(p.content.Caption(ctx, payload)).OrElse(func(err error) domain.Caption {
		p.logger.WithError(err).WithFields(logrus.Fields{"topic": topic, "stage": StageCaption}).Warn("using fallback caption")
		return domain.FallbackCaption(payload)
	})

	fetched := domain.Try(p.images.Fetch(ctx, domain.ImageQuery(payload)))
	fetched.Err = atStage(StageImage)(fetched.Err)

	composed := domain.Then(fetched, func(source string) (string, error) {
		path, err := p.composer.Compose(ctx, source, payload.Description, topic.Title())
		return path, atStage(StageCompose)(err)
	})

	return domain.Then(composed, func(path string) (domain.PostPackage, error) {
		return domain.PostPackage{
			Topic:       topic,
			ImagePath:   path,
			Caption:     caption.Text(),
			Description: payload.Description,
		}, nil
	})
}

// PublishSequential publishes each package on its own and pauses between
// successful publishes. Only confirmed packages are reported as published.
func (p *Pipeline) PublishSequential(ctx context.Context, packages []domain.PostPackage) PublishReport {
	report := PublishReport{Mode: domain.PublishModeSequential}

	channel, err := p.channels.Channel()
	if err != nil {
		report.Err = err
		return report
	}

	for i, pkg := range packages {
		if err := channel.PublishSingle(ctx, pkg.ImagePath, pkg.Caption); err != nil {
			p.logger.WithError(err).WithField("topic", pkg.Topic).Error("publish failed")
			p.observer.PublishAttempted(report.Mode, false)
			report.Failures = append(report.Failures, domain.PublishFailure{Topic: pkg.Topic, Reason: err.Error()})
			continue
		}

		p.observer.PublishAttempted(report.Mode, true)
		report.Published = append(report.Published, pkg)
		p.logger.WithField("topic", pkg.Topic).Info("published")

		if i < len(packages)-1 {
			if err := p.pacer.Pause(ctx); err != nil {
				p.logger.WithError(err).Warn("publishing interrupted")
				report.Err = err
				return report
			}
		}
	}

	return report
}

// PublishCarousel publishes every package as one multi-image post. It
// requires the full set of topics.
func (p *Pipeline) PublishCarousel(ctx context.Context, packages []domain.PostPackage) PublishReport {
	report := PublishReport{Mode: domain.PublishModeCarousel}

	channel, err := p.channels.Channel()
	if err != nil {
		report.Err = err
		return report
	}

	if len(packages) < len(p.topics) {
		report.Err = fmt.Errorf("%w: have %d of %d packages", domain.ErrUnderfilledBatch, len(packages), len(p.topics))
		p.logger.WithError(report.Err).Warn("carousel not published")
		return report
	}

	if err := channel.PublishCarousel(ctx, domain.ImagePaths(packages), domain.MasterCaption(packages)); err != nil {
		p.logger.WithError(err).Error("carousel publish failed")
		p.observer.PublishAttempted(report.Mode, false)
		if !errors.Is(err, domain.ErrPublishRejected) {
			err = fmt.Errorf("%w: %w", domain.ErrPublishRejected, err)
		}
		report.Err = err
		return report
	}

	p.observer.PublishAttempted(report.Mode, true)
	p.logger.WithField("images", len(packages)).Info("carousel published")
	report.Published = packages
	return report
}

// RandomPacer sleeps for a uniformly random duration in [Min, Max].
type RandomPacer struct {
	Min time.Duration
	Max time.Duration
}

func (r RandomPacer) Duration() time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rand.N(r.Max-r.Min+1)
}

func (r RandomPacer) Pause(ctx context.Context) error {
	timer := time.NewTimer(r.Duration())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
