package notification

import (
	"context"
	"log/slog"

	"github.com/nikoksr/notify"
	"github.com/pkg/errors"
)

const subjectFailure = "Rendering aborted"

type Manager struct {
	sender   Sender
	chatIDs  []int64
	logger   *slog.Logger
	notifier *notify.Notify
}

// NewManager reports nothing when sender is nil or chatIDs is empty.
func NewManager(sender Sender, chatIDs []int64, logger *slog.Logger) *Manager {
	m := &Manager{
		sender:  sender,
		chatIDs: chatIDs,
		logger:  logger,
	}
	if m.enabled() {
		tg := &Telegram{}
		tg.SetClient(sender)
		tg.AddReceivers(chatIDs...)
		m.notifier = notify.NewWithServices(tg)
	}
	return m
}

func (m *Manager) enabled() bool {
	return m.sender != nil && len(m.chatIDs) > 0
}

// ReportFailure tells the configured chats why the pipeline stopped.
func (m *Manager) ReportFailure(ctx context.Context, cause error) error {
	if !m.enabled() || cause == nil {
		return nil
	}
	m.logger.Info("reporting failure", "receivers", len(m.chatIDs))
	return errors.Wrap(m.notifier.Send(ctx, subjectFailure, cause.Error()), "notifying failure")
}
