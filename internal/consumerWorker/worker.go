package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"eventattend/internal/dto"
	"eventattend/internal/mailer"
	"eventattend/internal/rabbit"
)

// Reader drains attendance notifications from RabbitMQ and emails the
// configured event organizer about each one.
type Reader struct {
	RMQ    *rabbit.Client
	smtp   mailer.SMTP
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, smtp mailer.SMTP) *Reader {
	return &Reader{
		RMQ:  rmq,
		smtp: smtp,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("attendance notification reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.AttendanceOperateMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Int("attendance_id", msg.AttendanceID).
				Int("event_id", msg.EventID).
				Str("action", msg.Action).
				Msg("received attendance notification")

			if err := mailer.SendAttendanceEmail(
				&zlog.Logger,
				r.smtp,
				msg.Action,
				msg.EmployeeName,
				msg.EventDescription,
			); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Int("attendance_id", msg.AttendanceID).
					Msg("failed to send notification email")
			}

			// Mail failures are not requeued: the attendance record itself is
			// already durable, the notification is best effort.
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("attendance notification reader stopped")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
