package usecase

import (
	"context"

	"vclock/internal/modules/feedback/domain"
	"vclock/internal/modules/feedback/dto"
	feedbackin "vclock/internal/modules/feedback/port/in"
	"vclock/internal/modules/feedback/service"
)

type Interactor struct {
	svc *service.FeedbackService
}

func NewInteractor(svc *service.FeedbackService) feedbackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Play(ctx context.Context, input dto.PlayInput) {
	i.svc.Play(ctx, input.Sound, domain.PlayOptions{Loop: input.Loop, Volume: input.Volume})
}

func (i *Interactor) Stop(ctx context.Context) {
	i.svc.Stop(ctx)
}

func (i *Interactor) Test(ctx context.Context, input dto.TestInput) {
	i.svc.Test(ctx, input.Sound, input.Duration)
}

func (i *Interactor) Interact(ctx context.Context) {
	i.svc.Interact(ctx)
}

func (i *Interactor) Notify(ctx context.Context, input dto.NotifyInput) {
	i.svc.Notify(ctx, domain.Notification{
		Title:              input.Title,
		Body:               input.Body,
		Icon:               input.Icon,
		Tag:                input.Tag,
		RequireInteraction: input.RequireInteraction,
	})
}

func (i *Interactor) Vibrate(ctx context.Context, pattern []int) {
	i.svc.Vibrate(ctx, pattern)
}

func (i *Interactor) Status() dto.PlaybackStatus {
	return dto.PlaybackStatus{
		Playing:      i.svc.IsPlaying(),
		CurrentSound: i.svc.CurrentSound(),
		Pending:      i.svc.HasPending(),
	}
}

func (i *Interactor) Sounds() []dto.SoundOutput {
	catalog := domain.Catalog()
	out := make([]dto.SoundOutput, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, dto.SoundOutput{ID: s.ID, Name: s.Name, File: s.File})
	}
	return out
}
