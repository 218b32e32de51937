package interfaces

import (
	"context"

	"github.com/hiroq/pipet/pkg/domain/model"
)

type Notifier interface {
	NotifyComplete(ctx context.Context, summary *model.Summary) error
}
