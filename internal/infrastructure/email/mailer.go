package email

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/coursehub/coursehub-backend/internal/config"
	"github.com/coursehub/coursehub-backend/internal/domain/model"
)

// Mailer sends course-update notifications over SMTP. It satisfies
// usecase.CourseNotifier.
type Mailer struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

func NewMailer(cfg config.EmailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// NotifyCourseUpdated emails every recipient about the updated course.
// Failures are logged per recipient; one bad address does not stop the rest.
func (m *Mailer) NotifyCourseUpdated(course *model.Course, recipients []string) {
	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	sent := 0
	for _, to := range recipients {
		msg := gomail.NewMessage()
		msg.SetHeader("From", msg.FormatAddress(m.cfg.From, "CourseHub"))
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", fmt.Sprintf("Course %q has been updated", course.Title))
		msg.SetBody("text/html", courseUpdateBody(course))

		if err := dialer.DialAndSend(msg); err != nil {
			m.logger.Error("Failed to send course update email",
				zap.String("to", to),
				zap.Int64("course_id", course.ID),
				zap.Error(err))
			continue
		}
		sent++
	}

	m.logger.Info("Course update notifications sent",
		zap.Int64("course_id", course.ID),
		zap.Int("sent", sent),
		zap.Int("total", len(recipients)))
}

func courseUpdateBody(course *model.Course) string {
	return fmt.Sprintf(`<html><body>
<p>Hello,</p>
<p>The course <strong>%s</strong> you are subscribed to has new material.</p>
<p>Log in to CourseHub to see what changed.</p>
</body></html>`, course.Title)
}
